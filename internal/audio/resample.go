package audio

import "math"

// TargetSampleRate is the fixed rate the core pipeline analyzes audio at.
const TargetSampleRate = 11025

// chunkSize is the fixed number of input samples processed per resample
// batch. The final chunk is zero-padded up to this size; the resulting
// tail of silence is retained in the output rather than trimmed, since
// the matcher tolerates trailing silence.
const chunkSize = 1024

// sincHalfWidth is the number of taps on each side of the windowed-sinc
// kernel's center.
const sincHalfWidth = 16

// Resample converts samples from srcRate to targetRate using band-limited
// sinc interpolation with the cutoff set at 95% of the target Nyquist
// frequency. If the rates already match, the input is returned unchanged.
func Resample(samples []float32, srcRate, targetRate uint32) []float32 {
	if srcRate == targetRate || len(samples) == 0 {
		return samples
	}

	padded := padToChunk(samples, chunkSize)
	ratio := float64(targetRate) / float64(srcRate)

	// Cutoff expressed as a fraction of the source sample rate: 95% of
	// the target Nyquist, referred back to the source timeline.
	targetNyquist := float64(targetRate) / 2
	cutoffHz := 0.95 * targetNyquist
	cutoffFrac := cutoffHz / float64(srcRate)
	if cutoffFrac > 0.5 {
		cutoffFrac = 0.5
	}

	outLen := int(math.Round(float64(len(padded)) * ratio))
	out := make([]float32, outLen)

	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		out[i] = float32(sincInterpolate(padded, srcPos, cutoffFrac))
	}

	return out
}

// padToChunk zero-pads samples so its length is a multiple of size.
func padToChunk(samples []float32, size int) []float32 {
	remainder := len(samples) % size
	if remainder == 0 {
		return samples
	}
	padded := make([]float32, len(samples)+(size-remainder))
	copy(padded, samples)
	return padded
}

// sincInterpolate reconstructs the signal value at fractional position
// srcPos using a windowed-sinc kernel band-limited to cutoffFrac (a
// fraction of the sample rate, in [0, 0.5]).
func sincInterpolate(samples []float32, srcPos float64, cutoffFrac float64) float64 {
	center := int(math.Floor(srcPos))
	var acc float64

	for tap := center - sincHalfWidth; tap <= center+sincHalfWidth; tap++ {
		if tap < 0 || tap >= len(samples) {
			continue
		}

		x := srcPos - float64(tap)
		acc += float64(samples[tap]) * sincKernel(x, cutoffFrac) * blackmanWindow(x, sincHalfWidth)
	}

	return acc
}

// sincKernel is the ideal low-pass impulse response scaled to cutoffFrac.
func sincKernel(x, cutoffFrac float64) float64 {
	// normalize so the kernel integrates to 1 at cutoffFrac of the
	// sampling rate (two-sided cutoff -> factor of 2*cutoffFrac).
	arg := 2 * cutoffFrac * x
	if arg == 0 {
		return 2 * cutoffFrac
	}
	return 2 * cutoffFrac * math.Sin(math.Pi*arg) / (math.Pi * arg)
}

// blackmanWindow tapers the sinc kernel to suppress ringing, zero outside
// +/-halfWidth.
func blackmanWindow(x float64, halfWidth int) float64 {
	n := float64(halfWidth)
	if x < -n || x > n {
		return 0
	}
	t := (x + n) / (2 * n)
	return 0.42 - 0.5*math.Cos(2*math.Pi*t) + 0.08*math.Cos(4*math.Pi*t)
}
