package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided amplitude spectrum of a real series.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum transforms data sampled every dt. The mean is removed first
// so the zero bin does not swamp the plot. Any length is accepted.
func PowerSpectrum(data []float64, dt float64) Spectrum {
	n := len(data)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)

	half := n / 2
	s := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) / (float64(n) * dt)
		s.Power[k] = cmplx.Abs(coeffs[k])
	}
	return s
}

// Peak returns the frequency of the strongest non-zero bin.
func (s Spectrum) Peak() float64 {
	best := 0
	for k := 1; k < len(s.Power); k++ {
		if best == 0 || s.Power[k] > s.Power[best] {
			best = k
		}
	}
	if best == 0 {
		return 0
	}
	return s.Freqs[best]
}
