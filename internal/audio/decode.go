// Package audio implements the decoder adapter (mono PCM extraction from
// a file) and the fixed-rate resampler that feed the fingerprint
// pipeline.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrDecode is returned when a file produces zero usable audio samples.
var ErrDecode = errors.New("audio: no packet decoded successfully")

// Decode extracts mono float32 PCM samples in [-1.0, 1.0] and the source
// sample rate from path. The container is chosen by file extension;
// multi-channel frames are averaged down to mono. For MP3, the first read
// error ends decoding: the samples decoded before it are kept and nothing
// after it is read. For WAV, a decode error fails the whole file. Decode
// also fails (with ErrDecode) when no samples were decoded.
func Decode(path string) ([]float32, uint32, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return decodeMP3(path)
	default:
		return nil, 0, fmt.Errorf("audio: unsupported extension %q", filepath.Ext(path))
	}
}

func decodeWAV(path string) ([]float32, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: not a valid WAV file", ErrDecode)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decode wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, ErrDecode
	}

	samples := toMono(buf)
	return samples, uint32(buf.Format.SampleRate), nil
}

// toMono averages the channels of an int PCM buffer into normalized
// mono float32 samples, scaling by the buffer's own source bit depth.
func toMono(buf *goaudio.IntBuffer) []float32 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	fullScale := float32(int(1) << uint(buf.SourceBitDepth-1))
	if fullScale <= 0 {
		fullScale = 1 << 15
	}

	frames := len(buf.Data) / channels
	samples := make([]float32, 0, frames)

	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(buf.Data[i*channels+c])
		}
		samples = append(samples, (sum/float32(channels))/fullScale)
	}

	return samples
}

// decodeMP3 streams frames through go-mp3, which always yields 16-bit
// little-endian stereo PCM regardless of the source channel count.
// Partial or malformed trailing reads are treated as soft failures: the
// samples decoded so far are kept, and only a fully empty result fails.
func decodeMP3(path string) ([]float32, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var samples []float32
	chunk := make([]byte, 4096)

	for {
		n, err := dec.Read(chunk)
		if n > 0 {
			samples = append(samples, bytesToMonoFloat32(chunk[:n])...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			// soft failure: stop decoding further packets, keep what we have
			break
		}
	}

	if len(samples) == 0 {
		return nil, 0, ErrDecode
	}

	return samples, uint32(dec.SampleRate()), nil
}

// bytesToMonoFloat32 converts interleaved 16-bit stereo PCM bytes into
// averaged mono float32 samples in [-1.0, 1.0].
func bytesToMonoFloat32(b []byte) []float32 {
	const bytesPerFrame = 4 // 2 channels * 2 bytes
	frames := len(b) / bytesPerFrame
	out := make([]float32, 0, frames)

	for i := 0; i < frames; i++ {
		base := i * bytesPerFrame
		left := int16(uint16(b[base]) | uint16(b[base+1])<<8)
		right := int16(uint16(b[base+2]) | uint16(b[base+3])<<8)
		mono := (float32(left) + float32(right)) / 2
		out = append(out, mono/(1<<15))
	}

	return out
}
