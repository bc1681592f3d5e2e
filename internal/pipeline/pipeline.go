// Package pipeline wires the decode -> resample -> spectrogram ->
// peak-pick -> fingerprint stages into the single per-file function used
// by both ingestion and querying.
package pipeline

import (
	"fmt"

	"tunetrace/internal/audio"
	"tunetrace/internal/dsp"
	"tunetrace/internal/fingerprint"
)

// Options configures how a file is reduced to fingerprints.
type Options struct {
	Scheme      fingerprint.Scheme
	PeakModifier float64
	Fuzzy       bool // query-time only; ingestion must leave this false
}

// DefaultPeakModifier is the default multiplier applied to the rolling
// standard deviation when picking peaks above the local mean.
const DefaultPeakModifier = 2.0

// Run decodes path, resamples it to the pipeline's fixed analysis rate,
// computes its spectrogram, picks constellation peaks, and packs them
// into fingerprints.
func Run(path string, opts Options) ([]fingerprint.Fingerprint, error) {
	if opts.Fuzzy && opts.Scheme != fingerprint.SchemeQuad {
		return nil, fmt.Errorf("pipeline: fuzzy matching requires the quad scheme")
	}

	samples, srcRate, err := audio.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: decode %s: %w", path, err)
	}

	resampled := audio.Resample(samples, srcRate, audio.TargetSampleRate)

	spectrogram := dsp.STFT(resampled)

	modifier := opts.PeakModifier
	if modifier == 0 {
		modifier = DefaultPeakModifier
	}
	peaks := dsp.PickPeaks(spectrogram, modifier)

	if opts.Fuzzy {
		return fingerprint.GenerateQuadsFuzzy(peaks), nil
	}

	return fingerprint.Generate(opts.Scheme, peaks), nil
}
