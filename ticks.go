package jnuflux

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks marks an axis with about NSuggestedTicks labelled ticks
// placed on round values, and unlabelled minor ticks in between.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	majorMult, majorDelta := majorStep(min, max, t.NSuggestedTicks)

	var ticks []plot.Tick
	first := math.Floor(min/majorDelta) * majorDelta
	last := first
	for val := first; val <= max; val += majorDelta {
		last = val + majorDelta
		if val < min {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	prec := precision(first, last, majorDelta)
	for i := range ticks {
		v := round(ticks[i].Value, prec)
		ticks[i] = plot.Tick{Value: v, Label: formatFloatTick(v, -1)}
	}

	minorDelta := minorStep(majorMult, majorDelta)
	for val := math.Floor(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if val < min || hasTick(ticks, val) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

// majorStep returns the spacing of labelled ticks as a multiple of a
// power of ten.
func majorStep(min, max float64, n int) (int, float64) {
	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	steps := (max - min) / tens
	for steps < float64(n)-1 {
		tens /= 10
		steps = (max - min) / tens
	}

	mult := int(steps / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, float64(mult) * tens
}

// precision returns the number of significant digits needed to label
// ticks spaced by delta between first and last.
func precision(first, last, delta float64) int {
	top := math.Max(math.Abs(first), math.Abs(last))
	if top < delta {
		top = delta
	}
	return int(math.Ceil(math.Log10(top)) - math.Floor(math.Log10(delta)))
}

func minorStep(majorMult int, majorDelta float64) float64 {
	switch majorMult {
	case 3, 6:
		return majorDelta / 3
	case 5:
		return majorDelta / 5
	}
	return majorDelta / 2
}

func hasTick(ticks []plot.Tick, v float64) bool {
	for _, t := range ticks {
		if t.Value == v {
			return true
		}
	}
	return false
}

// LogTicks labels each decade of a logarithmic axis and marks the
// integer multiples in between.
type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= min {
		panic("illegal range")
	}

	var ticks []plot.Tick
	lo := int(math.Floor(math.Log10(min)))
	hi := int(math.Ceil(math.Log10(max)))
	for e := lo; e <= hi; e++ {
		dec := math.Pow10(e)
		for m := 1; m < 10; m++ {
			v := float64(m) * dec
			if v < min || v > max {
				continue
			}
			tick := plot.Tick{Value: v}
			if m == 1 {
				tick.Label = formatFloatTick(v, -1)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
