package audio

import (
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
)

func TestDecode_UnsupportedExtensionFails(t *testing.T) {
	_, _, err := Decode("song.flac")
	assert.Error(t, err)
}

func TestBytesToMonoFloat32_AveragesStereoChannels(t *testing.T) {
	// One stereo frame: left=+32767 (max), right=0 -> mono ~0.5
	b := []byte{0xFF, 0x7F, 0x00, 0x00}
	out := bytesToMonoFloat32(b)

	assert.Len(t, out, 1)
	assert.InDelta(t, 0.5, out[0], 0.01)
}

func TestToMono_AveragesAndNormalizesByBitDepth(t *testing.T) {
	buf := &goaudio.IntBuffer{
		Format:          &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:            []int{16384, 0, -16384, 0},
		SourceBitDepth:  16,
	}

	out := toMono(buf)
	assert.Len(t, out, 2)
	assert.InDelta(t, 0.25, out[0], 0.01)
	assert.InDelta(t, -0.25, out[1], 0.01)
}
