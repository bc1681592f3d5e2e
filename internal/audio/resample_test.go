package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResample_IdentityWhenRatesMatch(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3}
	out := Resample(samples, 11025, 11025)
	assert.Equal(t, samples, out)
}

func TestResample_EmptyInput(t *testing.T) {
	assert.Empty(t, Resample(nil, 44100, 11025))
}

func TestResample_OutputLengthScalesWithRatio(t *testing.T) {
	samples := make([]float32, 4410) // 0.1s at 44100
	out := Resample(samples, 44100, 11025)

	// The final partial chunk is zero-padded, so the output covers the
	// padded length: 4410 -> 5120 input samples -> 1280 output samples.
	padded := (len(samples) + chunkSize - 1) / chunkSize * chunkSize
	expected := padded / 4
	assert.InDelta(t, expected, len(out), float64(expected)*0.05)
}

func TestResample_PreservesLowFrequencyTone(t *testing.T) {
	const srcRate = 44100
	const targetRate = 11025
	const freq = 440.0

	samples := make([]float32, srcRate) // 1 second
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / srcRate))
	}

	out := Resample(samples, srcRate, targetRate)
	assert.NotEmpty(t, out)

	// A 440Hz tone should still have samples well within [-1,1] and not
	// have collapsed to near-silence.
	var maxAbs float32
	for _, v := range out {
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	assert.Greater(t, maxAbs, float32(0.3))
}
