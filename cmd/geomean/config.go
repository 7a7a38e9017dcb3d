package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pcnagy/geomean-lab/geomean"
)

type config struct {
	strategy geomean.Strategy
	threads  int
	chunk    int
	all      bool
	verbose  bool
	args     []string
}

// parseConfig reads flags from args. Environment variables provide the flag
// defaults, so a flag given on the command line always wins.
func parseConfig(args []string, stderr io.Writer) (cfg config, err error) {
	var (
		strategyEnv = getEnv("GEOMEAN_STRATEGY", geomean.StrategyEvenSplit().String())
		threadsEnv  = getEnv("GEOMEAN_THREADS", "0")
		chunkEnv    = getEnv("GEOMEAN_CHUNK", "0")
	)
	threadsDefault, err := strconv.Atoi(threadsEnv)
	if err != nil {
		return cfg, fmt.Errorf("GEOMEAN_THREADS: %w", err)
	}
	chunkDefault, err := strconv.Atoi(chunkEnv)
	if err != nil {
		return cfg, fmt.Errorf("GEOMEAN_CHUNK: %w", err)
	}

	fs := flag.NewFlagSet("geomean", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: geomean [flags] file-or-string...\n")
		fs.PrintDefaults()
	}
	strategyFlag := fs.String("strategy", strategyEnv,
		"work distribution: even-split, single-item-queue, guided, chunked-queue[:K], non-parallel-atomic, static-atomic-merge")
	fs.IntVar(&cfg.threads, "threads", threadsDefault, "number of workers; 0 uses GOMAXPROCS")
	fs.IntVar(&cfg.chunk, "chunk", chunkDefault, "chunk size of the chunked queue; 0 keeps the strategy's own")
	fs.BoolVar(&cfg.all, "all", false, "run every strategy")
	fs.BoolVar(&cfg.verbose, "v", false, "log CPU and configuration details")
	if err = fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.strategy, err = geomean.ParseStrategy(*strategyFlag); err != nil {
		return cfg, err
	}
	switch {
	case cfg.chunk < 0:
		return cfg, fmt.Errorf("%w: %v", geomean.ErrInvalidChunk, cfg.chunk)
	case cfg.chunk > 0 && cfg.strategy.Kind == geomean.ChunkedQueueKind:
		cfg.strategy.Chunk = cfg.chunk
	}
	cfg.args = fs.Args()
	return cfg, nil
}

// strategies returns the strategies to run, in order.
func (cfg config) strategies() []geomean.Strategy {
	if !cfg.all {
		return []geomean.Strategy{cfg.strategy}
	}
	chunk := cfg.chunk
	if chunk == 0 && cfg.strategy.Kind == geomean.ChunkedQueueKind {
		chunk = cfg.strategy.Chunk
	}
	return geomean.Strategies(chunk)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
