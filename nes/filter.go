package nes

import "math"

// filter is one first-order IIR stage in direct form:
// y[n] = b0*x[n] + b1*x[n-1] - a1*y[n-1], with coefficients derived from
// c = sampleRate / (pi * cutoff).
type filter struct {
	b0, b1, a1 float64
	prevX      float64
	prevY      float64
}

func newLowPassFilter(sampleRate, cutoff float64) *filter {
	c := sampleRate / (math.Pi * cutoff)
	a0i := 1 / (1 + c)
	return &filter{b0: a0i, b1: a0i, a1: (1 - c) * a0i}
}

func newHighPassFilter(sampleRate, cutoff float64) *filter {
	c := sampleRate / (math.Pi * cutoff)
	a0i := 1 / (1 + c)
	return &filter{b0: c * a0i, b1: -c * a0i, a1: (1 - c) * a0i}
}

func (f *filter) step(x float64) float64 {
	y := f.b0*x + f.b1*f.prevX - f.a1*f.prevY
	f.prevX = x
	f.prevY = y
	return y
}

// filterChain is the NES's fixed output filtering network: 90 Hz and
// 440 Hz high-pass stages followed by a 14 kHz low-pass.
type filterChain struct {
	stages []*filter
}

func newFilterChain(sampleRate float64) *filterChain {
	return &filterChain{stages: []*filter{
		newHighPassFilter(sampleRate, 90),
		newHighPassFilter(sampleRate, 440),
		newLowPassFilter(sampleRate, 14000),
	}}
}

func (fc *filterChain) apply(x float64) float64 {
	for _, s := range fc.stages {
		x = s.step(x)
	}
	return x
}
