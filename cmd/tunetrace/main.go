package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	_ = godotenv.Load()

	ctx := context.Background()

	switch os.Args[1] {
	case "index":
		indexCmd := flag.NewFlagSet("index", flag.ExitOnError)
		scheme := indexCmd.String("scheme", "pair", "hash scheme: pair or quad")
		workers := indexCmd.Int("workers", 0, "worker count (0 = all cores)")
		indexCmd.Parse(os.Args[2:])
		if indexCmd.NArg() < 2 {
			fmt.Println("usage: tunetrace index [-scheme pair|quad] [-workers N] <songs_dir> <out.index>")
			os.Exit(1)
		}
		os.Exit(runIndex(ctx, indexCmd.Arg(0), indexCmd.Arg(1), *scheme, *workers))

	case "match":
		matchCmd := flag.NewFlagSet("match", flag.ExitOnError)
		scheme := matchCmd.String("scheme", "pair", "hash scheme: pair or quad")
		threshold := matchCmd.Int("threshold", 0, "confidence threshold (0 = default)")
		matchCmd.Parse(os.Args[2:])
		if matchCmd.NArg() < 2 {
			fmt.Println("usage: tunetrace match [-scheme pair|quad] <index.bin> <query_file>")
			os.Exit(1)
		}
		os.Exit(runMatch(matchCmd.Arg(0), matchCmd.Arg(1), *scheme, *threshold))

	case "list":
		if len(os.Args) < 3 {
			fmt.Println("usage: tunetrace list <catalog.db>")
			os.Exit(1)
		}
		os.Exit(runList(os.Args[2]))

	case "stats":
		if len(os.Args) < 3 {
			fmt.Println("usage: tunetrace stats <catalog.db>")
			os.Exit(1)
		}
		os.Exit(runStats(os.Args[2]))

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: tunetrace <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  index [-scheme pair|quad] [-workers N] <songs_dir> <out.index>   build an index from a directory of audio")
	fmt.Println("  match [-scheme pair|quad] <index.bin> <query_file>               identify a query recording")
	fmt.Println("  list  <catalog.db>                                                list indexed songs")
	fmt.Println("  stats <catalog.db>                                                show catalog totals")
}
