package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunetrace/internal/dsp"
)

func samplePeaks() []dsp.Point {
	return []dsp.Point{
		{FreqBin: 3, Mag: 1, TimeIdx: 0},
		{FreqBin: 7, Mag: 1, TimeIdx: 1},
		{FreqBin: 15, Mag: 1, TimeIdx: 2},
		{FreqBin: 40, Mag: 1, TimeIdx: 5},
		{FreqBin: 80, Mag: 1, TimeIdx: 8},
		{FreqBin: 12, Mag: 1, TimeIdx: 9},
	}
}

func TestGeneratePairs_Deterministic(t *testing.T) {
	peaks := samplePeaks()
	first := GeneratePairs(peaks)
	second := GeneratePairs(peaks)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestGeneratePairs_HashLayout(t *testing.T) {
	peaks := []dsp.Point{
		{FreqBin: 3, TimeIdx: 0},
		{FreqBin: 0, TimeIdx: 1},
		{FreqBin: 0, TimeIdx: 2},
		{FreqBin: 9, TimeIdx: 4},
	}

	fps := GeneratePairs(peaks)
	assert.NotEmpty(t, fps)

	fp := fps[0]
	f1 := fp.Hash >> 44
	f2 := (fp.Hash >> 24) & 0xFFFFF
	dt := fp.Hash & 0xFFFFFF

	assert.Equal(t, uint64(3), f1)
	assert.Equal(t, uint64(9), f2)
	assert.Equal(t, uint64(4), dt)
	assert.Equal(t, uint64(0), fp.TimeOffset)
}

func TestGeneratePairs_NoTargetsPastEnd(t *testing.T) {
	peaks := []dsp.Point{{FreqBin: 1, TimeIdx: 0}}
	assert.Empty(t, GeneratePairs(peaks))
}

func TestGenerate_DispatchesByScheme(t *testing.T) {
	peaks := samplePeaks()
	assert.Equal(t, GeneratePairs(peaks), Generate(SchemePair, peaks))
	assert.Equal(t, GenerateQuads(peaks), Generate(SchemeQuad, peaks))
}
