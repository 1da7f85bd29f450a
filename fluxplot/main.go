package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sort"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/jnuflux"
	"github.com/decibelcooper/jnuflux/flux"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <flux-file>

Plots the energy spectra of the flux neutrinos generated from a jnubeam
flux ntuple, one histogram per species.

options:
`,
	)
	flag.PrintDefaults()
}

var speciesColor = map[int]color.RGBA{
	flux.PdgNuMu:     {A: 255},
	flux.PdgAntiNuMu: {R: 255, A: 255},
	flux.PdgNuE:      {G: 255, A: 255},
	flux.PdgAntiNuE:  {B: 255, A: 255},
}

func main() {
	log.SetPrefix("fluxplot: ")
	log.SetFlags(0)

	cfg := flux.DefaultConfig()
	species := jnuflux.SpeciesFlags{Array: cfg.Species}
	flag.Var(&species, "species", "neutrino species to plot (PDG codes or names)")
	var (
		loc      = flag.String("loc", "nd5", "detector location (nd1..nd50, or sk for the far detector)")
		nevts    = flag.Int("n", 100000, "number of flux neutrinos to generate")
		nbins    = flag.Int("bins", 50, "number of energy bins")
		emax     = flag.Float64("emax", 10, "upper edge of the energy axis (GeV)")
		weighted = flag.Bool("weighted", false, "fill weighted flux neutrinos from one cycle instead of an unweighted stream")
		logY     = flag.Bool("logy", false, "logarithmic y axis")
		title    = flag.String("title", "", "plot title")
		output   = flag.String("output", "flux.png", "output file")
		doProf   = flag.Bool("prof", false, "write a CPU profile")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProf {
		defer profile.Start().Stop()
	}

	cfg.Species = species.Array
	cfg.Weighted = *weighted
	if *weighted {
		cfg.Cycles = 1
		cfg.RandomOffset = false
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	drv := flux.New(cfg, flux.WithLogger(logger))
	if err := drv.LoadFile(flag.Arg(0), *loc); err != nil {
		log.Fatal(err)
	}
	defer drv.Close()

	hists := makeEnergyHists(drv, *nevts, *nbins, *emax)

	p := plot.New()
	p.Title.Text = *title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s flux at %s", flag.Arg(0), drv.Location())
	}
	p.X.Label.Text = "Enu (GeV)"
	p.X.Tick.Marker = jnuflux.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Label.Text = "Entries"
	p.Y.Tick.Marker = jnuflux.PreciseTicks{NSuggestedTicks: 5}
	if *logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = jnuflux.LogTicks{}
	}

	pdgs := make([]int, 0, len(hists))
	for pdg := range hists {
		pdgs = append(pdgs, pdg)
	}
	sort.Ints(pdgs)
	for _, pdg := range pdgs {
		h := hplot.NewH1D(hists[pdg], hplot.WithLogY(*logY))
		h.LineStyle.Color = speciesColor[pdg]
		if len(hists) == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}
		p.Add(h)
		p.Legend.Add(flux.PdgName(pdg), h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		log.Fatal(err)
	}
	log.Printf("%d flux neutrinos, POT = %g", drv.Accepted(), drv.POTCurrentAvg())
}

func makeEnergyHists(drv *flux.Driver, nevts, nbins int, emax float64) map[int]*hbook.H1D {
	hists := make(map[int]*hbook.H1D)
	weighted := drv.Config().Weighted
	fill := func() {
		pdg := drv.PDG()
		h, ok := hists[pdg]
		if !ok {
			h = hbook.NewH1D(nbins, 0, emax)
			hists[pdg] = h
		}
		w := 1.0
		if weighted {
			w = drv.Weight()
		}
		p4 := drv.P4()
		h.Fill(p4.E(), w)
	}

	if weighted {
		for !drv.End() {
			ok, err := drv.NextWeighted()
			if err != nil {
				log.Fatal(err)
			}
			if ok {
				fill()
			}
		}
		return hists
	}

	for i := 0; i < nevts; i++ {
		ok, err := drv.Next()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}
		fill()
	}
	return hists
}
