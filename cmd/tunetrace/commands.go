package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tunetrace/internal/catalog"
	"tunetrace/internal/fingerprint"
	"tunetrace/internal/index"
	"tunetrace/internal/logging"
	"tunetrace/internal/match"
	"tunetrace/internal/pipeline"

	"tunetrace/internal/ingest"
)

// Exit codes: 0 = match found, 1 = no match, 2 = I/O or decode failure.
const (
	exitOK       = 0
	exitNoMatch  = 1
	exitFailure  = 2
)

func parseScheme(s string) fingerprint.Scheme {
	if strings.EqualFold(s, "quad") {
		return fingerprint.SchemeQuad
	}
	return fingerprint.SchemePair
}

func runIndex(ctx context.Context, songsDir, outPath, scheme string, workers int) int {
	idx := index.New()

	catalogPath := outPath + ".catalog.db"
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		logging.Error(ctx, "failed to open catalog", err)
		return exitFailure
	}
	defer cat.Close()

	count, err := ingest.Run(ctx, songsDir, idx, cat, ingest.Options{
		Scheme:  parseScheme(scheme),
		Workers: workers,
	})
	if err != nil {
		logging.Error(ctx, "ingestion failed", err)
		return exitFailure
	}

	if err := idx.Save(outPath); err != nil {
		logging.Error(ctx, "failed to save index", err)
		return exitFailure
	}

	fmt.Printf("indexed %d songs (%d distinct hashes) -> %s\n", count, idx.HashCount(), outPath)
	return exitOK
}

func runMatch(indexPath, queryPath, scheme string, threshold int) int {
	idx, err := index.Load(indexPath)
	if err != nil {
		logging.Error(context.Background(), "failed to load index", err)
		return exitFailure
	}

	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}

	fps, err := pipeline.Run(queryPath, pipeline.Options{Scheme: parseScheme(scheme)})
	if err != nil {
		logging.Error(context.Background(), "failed to fingerprint query", err)
		return exitFailure
	}

	hashes := make([]uint64, len(fps))
	offsets := make([]uint64, len(fps))
	for i, fp := range fps {
		hashes[i] = fp.Hash
		offsets[i] = fp.TimeOffset
	}

	result, ok := match.Match(idx, hashes, offsets, threshold)
	if !ok {
		color.Red("no match (threshold=%d)", threshold)
		return exitNoMatch
	}

	color.Green("match: %s (confidence=%d)", result.SongName, result.Confidence)
	return exitOK
}

func runList(catalogPath string) int {
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		logging.Error(context.Background(), "failed to open catalog", err)
		return exitFailure
	}
	defer cat.Close()

	songs, err := cat.List()
	if err != nil {
		logging.Error(context.Background(), "failed to list songs", err)
		return exitFailure
	}

	for _, s := range songs {
		fmt.Printf("%-6d %-40s %8d hashes  %s\n", s.ID, s.Name, s.FingerprintCount, s.IndexedAt.Format("2006-01-02 15:04:05"))
	}
	return exitOK
}

func runStats(catalogPath string) int {
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		logging.Error(context.Background(), "failed to open catalog", err)
		return exitFailure
	}
	defer cat.Close()

	stats, err := cat.Stats()
	if err != nil {
		logging.Error(context.Background(), "failed to compute stats", err)
		return exitFailure
	}

	fmt.Printf("songs:        %d\n", stats.SongCount)
	fmt.Printf("fingerprints: %d\n", stats.TotalFingerprints)
	return exitOK
}
