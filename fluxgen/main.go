package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/jnuflux"
	"github.com/decibelcooper/jnuflux/flux"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <flux-file>

Replays a jnubeam flux ntuple and writes the generated flux neutrinos to
a ROOT (.root) or proio (.proio) file. Options default to the JNUFLUX_*
environment variables when set.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("fluxgen: ")
	log.SetFlags(0)

	cfg, err := flux.ConfigFromEnv()
	if err != nil {
		log.Fatalf("could not parse environment: %v", err)
	}

	species := jnuflux.SpeciesFlags{Array: cfg.Species}
	flag.Var(&species, "species", "neutrino species to generate (PDG codes or names)")
	flag.StringVar(&cfg.Location, "loc", cfg.Location, "detector location (nd1..nd50, or sk for the far detector)")
	flag.Float64Var(&cfg.MaxEnergy, "emax", cfg.MaxEnergy, "maximum neutrino energy (GeV)")
	flag.Float64Var(&cfg.FilePOT, "pot", cfg.FilePOT, "protons on target used to produce the flux file")
	flag.Float64Var(&cfg.UpstreamZ, "z0", cfg.UpstreamZ, "z of the generated neutrino vertices (m)")
	flag.IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "number of flux ntuple cycles (0: unlimited)")
	flag.BoolVar(&cfg.Weighted, "weighted", cfg.Weighted, "generate weighted flux neutrinos")
	flag.BoolVar(&cfg.RandomOffset, "offset", cfg.RandomOffset, "start at a random flux ntuple entry")
	var (
		nevts   = flag.Int64("n", 0, "number of flux neutrinos to generate (0: until the last cycle)")
		output  = flag.String("o", "flux.root", "output file")
		seed    = flag.Int64("seed", 0, "random seed (0: random)")
		prof    = flag.Bool("prof", false, "write a CPU profile")
		verbose = flag.Bool("v", false, "verbose flux driver logging")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() > 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if flag.NArg() == 1 {
		cfg.File = flag.Arg(0)
	}
	if cfg.File == "" {
		printUsage()
		log.Fatal("no flux file given")
	}
	if *nevts <= 0 && cfg.Cycles <= 0 {
		log.Fatal("unlimited cycles need a number of flux neutrinos (-n)")
	}
	cfg.Species = species.Array

	var stopProfile func()
	if *prof {
		stopProfile = profile.Start(profile.ProfilePath(".")).Stop
	}

	if *seed == 0 {
		*seed = newSeed()
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	run, n, err := generate(cfg, logger, *seed, *nevts, *output)
	if stopProfile != nil {
		stopProfile()
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("run %s: %d flux neutrinos written to %s", run.ID, n, *output)
	log.Printf("POT/cycle = %g, POT = %g", run.POTPerCycle, run.POT)
}

// generate writes up to nevts flux neutrinos (all cycles when nevts <= 0)
// to output. The output file is closed with the run totals reached so far,
// also when generation fails.
func generate(cfg flux.Config, logger *logrus.Logger, seed, nevts int64, output string) (run runInfo, n int64, err error) {
	drv := flux.New(cfg,
		flux.WithLogger(logger),
		flux.WithRand(rand.New(rand.NewSource(seed))),
	)
	if err := drv.LoadFile(cfg.File, cfg.Location); err != nil {
		return run, 0, fmt.Errorf("could not load flux: %w", err)
	}
	defer drv.Close()

	run = runInfo{
		ID:       uuid.New().String(),
		Seed:     seed,
		Location: drv.Location().String(),
		File:     filepath.Base(cfg.File),
	}
	w, err := newWriter(output, run)
	if err != nil {
		return run, 0, fmt.Errorf("could not create output file: %w", err)
	}
	defer func() {
		run.POTPerCycle = drv.POTPerCycle()
		run.POT = drv.POTCurrentAvg()
		run.Cycle = drv.Cycle()
		if cerr := w.Close(run); cerr != nil && err == nil {
			err = fmt.Errorf("could not close output file: %w", cerr)
		}
	}()

	for nevts <= 0 || n < nevts {
		ok, err := drv.Next()
		if err != nil {
			return run, n, fmt.Errorf("could not generate flux neutrino: %w", err)
		}
		if !ok {
			break
		}
		if err := w.Write(drv.Event()); err != nil {
			return run, n, fmt.Errorf("could not write flux neutrino: %w", err)
		}
		n++
	}
	return run, n, nil
}

func newSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		log.Fatalf("could not draw random seed: %v", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
