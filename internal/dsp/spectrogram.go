package dsp

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// WindowSize is the STFT frame length, in samples, and must be a power of
// two (go-dsp's FFT handles arbitrary lengths, but the core operates at
// this fixed size).
const WindowSize = 1024

// Overlap is the number of samples shared between consecutive frames,
// making Hop the effective stride.
const Overlap = WindowSize / 2

// Hop is the distance, in samples, between the start of consecutive STFT
// frames (50% overlap).
const Hop = WindowSize - Overlap

var hannWindow = buildHannWindow(WindowSize)

func buildHannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// STFT computes the magnitude spectrogram of samples: one column per
// WindowSize-sample frame, advancing Hop samples between frames, each
// windowed with a Hann taper before the forward FFT. Columns are returned
// in time order, each holding the first WindowSize/2 (positive-frequency)
// magnitude bins.
func STFT(samples []float32) [][]float64 {
	if len(samples) < WindowSize {
		return nil
	}

	numFrames := (len(samples)-WindowSize)/Hop + 1
	columns := make([][]float64, 0, numFrames)

	frame := make([]float64, WindowSize)
	for start := 0; start+WindowSize <= len(samples); start += Hop {
		for i := 0; i < WindowSize; i++ {
			frame[i] = float64(samples[start+i]) * hannWindow[i]
		}

		spectrum := fft.FFTReal(frame)

		magnitudes := make([]float64, WindowSize/2)
		for i := range magnitudes {
			magnitudes[i] = cmplxAbs(spectrum[i])
		}
		columns = append(columns, magnitudes)
	}

	return columns
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
