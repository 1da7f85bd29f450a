package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/golang/protobuf/proto"
	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/jnuflux/flux"
)

type runInfo struct {
	ID       string
	Seed     int64
	Location string
	File     string

	POTPerCycle float64
	POT         float64
	Cycle       int
}

type eventWriter interface {
	Write(evt flux.Event) error
	Close(run runInfo) error
}

func newWriter(fname string, run runInfo) (eventWriter, error) {
	switch filepath.Ext(fname) {
	case ".root":
		return newROOTWriter(fname, run)
	case ".proio":
		return newProioWriter(fname, run)
	}
	return nil, fmt.Errorf("unknown output format %q", filepath.Ext(fname))
}

// rootWriter stores flux neutrinos in a "flux" tree and the run summary
// in a one-entry "run" tree.
type rootWriter struct {
	f *groot.File
	w rtree.Writer

	evt struct {
		PDG    int32
		E      float64
		Px     float64
		Py     float64
		Pz     float64
		X      float64
		Y      float64
		Z      float64
		Weight float64
		Entry  int64

		Norm float32
		Enu  float32
		Ppid int32
		Mode int32
		Idfd int32
		Xnu  float32
		Ynu  float32
		Nnu  [3]float32
		Ng   int32
		Gpid [flux.NgMax]int32
		Gmec [flux.NgMax]int32
	}
}

func newROOTWriter(fname string, run runInfo) (*rootWriter, error) {
	f, err := groot.Create(fname)
	if err != nil {
		return nil, err
	}

	w := &rootWriter{f: f}
	wvars := []rtree.WriteVar{
		{Name: "pdg", Value: &w.evt.PDG},
		{Name: "E", Value: &w.evt.E},
		{Name: "px", Value: &w.evt.Px},
		{Name: "py", Value: &w.evt.Py},
		{Name: "pz", Value: &w.evt.Pz},
		{Name: "x", Value: &w.evt.X},
		{Name: "y", Value: &w.evt.Y},
		{Name: "z", Value: &w.evt.Z},
		{Name: "weight", Value: &w.evt.Weight},
		{Name: "entry", Value: &w.evt.Entry},
		{Name: "norm", Value: &w.evt.Norm},
		{Name: "Enu", Value: &w.evt.Enu},
		{Name: "ppid", Value: &w.evt.Ppid},
		{Name: "mode", Value: &w.evt.Mode},
		{Name: "idfd", Value: &w.evt.Idfd},
		{Name: "xnu", Value: &w.evt.Xnu},
		{Name: "ynu", Value: &w.evt.Ynu},
		{Name: "nnu", Value: &w.evt.Nnu},
		{Name: "ng", Value: &w.evt.Ng},
		{Name: "gpid", Value: &w.evt.Gpid},
		{Name: "gmec", Value: &w.evt.Gmec},
	}
	title := fmt.Sprintf("flux neutrinos from %s at %s (run %s)", run.File, run.Location, run.ID)
	w.w, err = rtree.NewWriter(f, "flux", wvars, rtree.WithTitle(title))
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *rootWriter) Write(evt flux.Event) error {
	w.evt.PDG = int32(evt.PDG)
	w.evt.E = evt.P4.E()
	w.evt.Px = evt.P4.Px()
	w.evt.Py = evt.P4.Py()
	w.evt.Pz = evt.P4.Pz()
	w.evt.X = evt.X4.X
	w.evt.Y = evt.X4.Y
	w.evt.Z = evt.X4.Z
	w.evt.Weight = evt.Weight
	w.evt.Entry = evt.Entry

	rec := evt.Info
	w.evt.Norm = rec.Norm
	w.evt.Enu = rec.Enu
	w.evt.Ppid = rec.Ppid
	w.evt.Mode = rec.Mode
	w.evt.Idfd = rec.Idfd
	w.evt.Xnu = rec.Xnu
	w.evt.Ynu = rec.Ynu
	w.evt.Nnu = rec.Nnu
	w.evt.Ng = rec.Ng
	w.evt.Gpid = rec.Gpid
	w.evt.Gmec = rec.Gmec

	_, err := w.w.Write()
	return err
}

func (w *rootWriter) Close(run runInfo) error {
	if err := w.w.Close(); err != nil {
		w.f.Close()
		return err
	}

	var sum struct {
		Seed        int64
		POTPerCycle float64
		POT         float64
		Cycle       int32
	}
	rw, err := rtree.NewWriter(w.f, "run", []rtree.WriteVar{
		{Name: "seed", Value: &sum.Seed},
		{Name: "pot_cycle", Value: &sum.POTPerCycle},
		{Name: "pot", Value: &sum.POT},
		{Name: "cycle", Value: &sum.Cycle},
	}, rtree.WithTitle("run "+run.ID))
	if err != nil {
		w.f.Close()
		return err
	}
	sum.Seed = run.Seed
	sum.POTPerCycle = run.POTPerCycle
	sum.POT = run.POT
	sum.Cycle = int32(run.Cycle)
	if _, err := rw.Write(); err != nil {
		w.f.Close()
		return err
	}
	if err := rw.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// proioWriter stores each flux neutrino as a Particle entry tagged
// "Flux", with the run information pushed as stream metadata.
type proioWriter struct {
	w *proio.Writer
}

func newProioWriter(fname string, run runInfo) (*proioWriter, error) {
	w, err := proio.Create(fname)
	if err != nil {
		return nil, err
	}
	w.PushMetadata("RunID", []byte(run.ID))
	w.PushMetadata("Seed", []byte(strconv.FormatInt(run.Seed, 10)))
	w.PushMetadata("FluxFile", []byte(run.File))
	w.PushMetadata("Location", []byte(run.Location))
	return &proioWriter{w: w}, nil
}

func (w *proioWriter) Write(evt flux.Event) error {
	part := &eic.Particle{
		Pdg: proto.Int32(int32(evt.PDG)),
		P: &eic.XYZF{
			X: proto.Float32(float32(evt.P4.Px())),
			Y: proto.Float32(float32(evt.P4.Py())),
			Z: proto.Float32(float32(evt.P4.Pz())),
		},
		Vertex: &eic.XYZTD{
			X: proto.Float64(evt.X4.X),
			Y: proto.Float64(evt.X4.Y),
			Z: proto.Float64(evt.X4.Z),
			T: proto.Float64(evt.X4.T),
		},
	}

	event := proio.NewEvent()
	id := event.AddEntry("Particle", part)
	event.TagEntry(id, "Flux")
	event.Metadata["Entry"] = []byte(strconv.FormatInt(evt.Entry, 10))
	event.Metadata["Weight"] = []byte(strconv.FormatFloat(evt.Weight, 'g', -1, 64))
	return w.w.Push(event)
}

func (w *proioWriter) Close(run runInfo) error {
	w.w.PushMetadata("POTPerCycle", []byte(strconv.FormatFloat(run.POTPerCycle, 'g', -1, 64)))
	w.w.PushMetadata("POT", []byte(strconv.FormatFloat(run.POT, 'g', -1, 64)))
	return w.w.Close()
}
