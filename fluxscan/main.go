package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/jnuflux/flux"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <flux-files>...

Prints the load statistics of jnubeam flux ntuples at a detector location
and the weighted neutrino energy of one cycle per species.

options:
`,
	)
	flag.PrintDefaults()
}

type sample struct {
	enu    []float64
	weight []float64
}

func main() {
	log.SetPrefix("fluxscan: ")
	log.SetFlags(0)

	var (
		loc  = flag.String("loc", "nd5", "detector location (nd1..nd50, or sk for the far detector)")
		pot  = flag.Float64("pot", flux.DefaultConfig().FilePOT, "protons on target used to produce the flux files")
		emax = flag.Float64("emax", flux.DefaultConfig().MaxEnergy, "maximum neutrino energy (GeV)")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	o := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, filename := range flag.Args() {
		scanFile(o, logger, filename, *loc, *pot, *emax)
	}
	o.Flush()
}

func scanFile(o *tabwriter.Writer, logger *logrus.Logger, filename, loc string, pot, emax float64) {
	cfg := flux.DefaultConfig()
	cfg.FilePOT = pot
	cfg.MaxEnergy = emax
	cfg.Cycles = 1
	cfg.Weighted = true
	cfg.RandomOffset = false

	drv := flux.New(cfg, flux.WithLogger(logger))
	if err := drv.LoadFile(filename, loc); err != nil {
		log.Fatal(err)
	}
	defer drv.Close()

	st := drv.Stats()
	fmt.Fprintf(o, "%s\tlocation %s\n", filename, drv.Location())
	fmt.Fprintf(o, "  entries\t%d\n", st.Entries)
	fmt.Fprintf(o, "  matching\t%d\n", st.Matching)
	fmt.Fprintf(o, "  sum of weights\t%g\n", st.SumWeight)
	fmt.Fprintf(o, "  max weight\t%g\n", st.MaxWeight)
	if st.Negative > 0 {
		fmt.Fprintf(o, "  negative weights\t%d\n", st.Negative)
	}
	fmt.Fprintf(o, "  POT/cycle\t%g\n", drv.POTPerCycle())

	samples := make(map[int]*sample)
	for !drv.End() {
		ok, err := drv.NextWeighted()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			continue
		}
		s, found := samples[drv.PDG()]
		if !found {
			s = &sample{}
			samples[drv.PDG()] = s
		}
		p4 := drv.P4()
		s.enu = append(s.enu, p4.E())
		s.weight = append(s.weight, drv.Weight())
	}

	pdgs := make([]int, 0, len(samples))
	for pdg := range samples {
		pdgs = append(pdgs, pdg)
	}
	sort.Ints(pdgs)
	for _, pdg := range pdgs {
		s := samples[pdg]
		mean, std := stat.MeanStdDev(s.enu, s.weight)
		fmt.Fprintf(o, "  %s\t%d entries, <Enu> = %.4g GeV, rms = %.4g GeV\n", flux.PdgName(pdg), len(s.enu), mean, std)
	}
}
