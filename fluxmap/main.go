package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/jnuflux"
	"github.com/decibelcooper/jnuflux/flux"
)

var (
	loc     = flag.String("loc", "nd5", "near detector location (nd1..nd50)")
	z0      = flag.Float64("z0", flux.DefaultConfig().UpstreamZ, "z of the projection plane (m)")
	limit   = flag.Float64("limit", 5, "maximum absolute value of x and y (m)")
	nBins   = flag.Int("nbins", 20, "number of bins in x and y")
	nEvts   = flag.Int("n", 100000, "number of flux neutrinos to generate")
	energy  = flag.Bool("energy", false, "map the mean neutrino energy instead of the rate")
	zLimit  = flag.Float64("zlimit", 0, "maximum of the color map (0: maximum of the map)")
	title   = flag.String("title", "", "plot title")
	output  = flag.String("output", "out.png", "output file")
	species jnuflux.SpeciesFlags
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <flux-file>

Maps the flux neutrinos of a near detector location on the plane z = z0,
either as a rate or as the mean neutrino energy per bin.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("fluxmap: ")
	log.SetFlags(0)

	cfg := flux.DefaultConfig()
	species.Array = cfg.Species
	flag.Var(&species, "species", "neutrino species to map (PDG codes or names)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	location, err := flux.ParseLocation(*loc)
	if err != nil {
		log.Fatal(err)
	}
	if !location.IsNear() {
		log.Fatalf("no detector plane at location %s", location)
	}

	cfg.Species = species.Array
	cfg.UpstreamZ = *z0

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	drv := flux.New(cfg, flux.WithLogger(logger))
	if err := drv.LoadFile(flag.Arg(0), *loc); err != nil {
		log.Fatal(err)
	}
	defer drv.Close()

	grid := NewEnergyGrid(*nBins, -*limit, *limit, *nBins, -*limit, *limit)
	grid.Energy = *energy
	for i := 0; i < *nEvts; i++ {
		ok, err := drv.Next()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}
		x4, p4 := drv.X4(), drv.P4()
		grid.Fill(x4.X, x4.Y, p4.E())
	}

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.X.Tick.Marker = jnuflux.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = jnuflux.PreciseTicks{NSuggestedTicks: 5}

	zMax := *zLimit
	if zMax <= 0 {
		zMax = grid.Max()
	}
	if zMax <= 0 {
		log.Fatal("empty flux map")
	}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zMax)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = 0
	heatMap.Max = zMax
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0
	if *energy {
		p.Y.Label.Text = "<Enu> (GeV)"
	}

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		log.Fatal(err)
	}
}
