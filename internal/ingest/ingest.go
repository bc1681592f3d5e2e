// Package ingest walks a directory of audio files, fingerprints them
// concurrently across a worker pool, and hands the results to a single
// writer goroutine that owns all mutation of the index and catalog.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"tunetrace/internal/catalog"
	"tunetrace/internal/fingerprint"
	"tunetrace/internal/index"
	"tunetrace/internal/logging"
	"tunetrace/internal/pipeline"
)

// audioExtensions are the only extensions walked and processed; matching
// is case-sensitive, following the host filesystem's own conventions.
var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// Options configures a directory ingestion run.
type Options struct {
	Scheme  fingerprint.Scheme
	Workers int // 0 selects runtime.NumCPU()
}

// job is one file handed from the walker to a worker.
type job struct {
	path string
	name string
}

// result is one worker's output, handed to the single writer.
type result struct {
	name      string
	hashes    []uint64
	offsets   []uint64
}

// Run walks root for audio files, fingerprints each one across a worker
// pool, and writes the results into idx and cat. Per-file decode or
// fingerprinting errors are logged and skipped; they never abort the
// run. The returned count is how many files were successfully indexed.
func Run(ctx context.Context, root string, idx *index.Index, cat *catalog.Catalog, opts Options) (int, error) {
	paths, err := discover(root)
	if err != nil {
		return 0, fmt.Errorf("ingest: walk %s: %w", root, err)
	}
	if len(paths) == 0 {
		return 0, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan job, len(paths))
	results := make(chan result, len(paths))
	bar := progressbar.Default(int64(len(paths)), "fingerprinting")

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				fps, err := pipeline.Run(j.path, pipeline.Options{Scheme: opts.Scheme})
				if err != nil {
					logging.Warn(gctx, "skipping file", "path", j.path, "error", err)
					_ = bar.Add(1)
					continue
				}

				hashes := make([]uint64, len(fps))
				offsets := make([]uint64, len(fps))
				for i, fp := range fps {
					hashes[i] = fp.Hash
					offsets[i] = fp.TimeOffset
				}

				results <- result{name: j.name, hashes: hashes, offsets: offsets}
				_ = bar.Add(1)
			}
			return nil
		})
	}

	go func() {
		for _, p := range paths {
			jobs <- job{path: p, name: songName(p)}
		}
		close(jobs)
	}()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	indexed := 0

	// The writer: the only goroutine that ever mutates idx or cat.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for r := range results {
			songID := idx.AddSong(r.name)
			if err := idx.InsertFingerprints(songID, r.hashes, r.offsets); err != nil {
				logging.Warn(ctx, "failed to insert fingerprints", "song", r.name, "error", err)
				continue
			}
			if cat != nil {
				if err := cat.RegisterSong(songID, r.name, len(r.hashes)); err != nil {
					logging.Warn(ctx, "failed to mirror song to catalog", "song", r.name, "error", err)
				}
			}
			indexed++
		}
	}()

	waitErr := <-done
	close(results)
	<-writerDone

	if waitErr != nil {
		return indexed, fmt.Errorf("ingest: %w", waitErr)
	}
	return indexed, nil
}

// discover walks root collecting audio files by extension. Unreadable
// subdirectories are skipped with a warning rather than aborting the
// whole walk. filepath.Walk uses Lstat, so symlinked directories are not
// descended into; a symlink whose name has an audio extension is still
// collected.
func discover(root string) ([]string, error) {
	var paths []string

	err := filepath.Walk(root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			logging.Warn(context.Background(), "skipping unreadable path", "path", p, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if audioExtensions[filepath.Ext(p)] {
			paths = append(paths, p)
		}
		return nil
	})

	return paths, err
}

// songName derives a default song name from a file path, honoring a
// `<file>.meta.json` sidecar if present.
func songName(path string) string {
	if name, ok := sidecarName(path); ok {
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
