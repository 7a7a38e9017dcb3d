// Command geomean prints the geometric mean of the bytes of its arguments.
//
// Each argument that names a file contributes the file's contents; any other
// argument contributes its own characters. The result is printed with the
// time the computation took:
//
//	$ geomean -strategy chunked-queue:1000 big.bin
//	1843022 ns to process 10485760 characters: 61.8214
//
// Flags default to the GEOMEAN_STRATEGY, GEOMEAN_THREADS and GEOMEAN_CHUNK
// environment variables, which may also be set in a .env file in the working
// directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/klauspost/cpuid/v2"

	"github.com/pcnagy/geomean-lab/geomean"
	"github.com/pcnagy/geomean-lab/internal/input"
)

func main() {
	// A missing .env file is fine; the environment is used as is.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("geomean: loading .env: %v", err)
	}
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("geomean: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}
	logger := log.New(stderr, "geomean: ", 0)
	if !cfg.verbose {
		logger.SetOutput(io.Discard)
	}
	logger.Printf("cpu: %s, %d physical cores, %d logical cores, %d byte cache lines",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores, cpuid.CPU.CacheLine)
	logger.Printf("GOMAXPROCS=%d threads=%d strategy=%v", runtime.GOMAXPROCS(0), cfg.threads, cfg.strategy)

	s, err := input.Load(cfg.args)
	if err != nil {
		return err
	}

	for _, strategy := range cfg.strategies() {
		t0 := time.Now()
		answer := geomean.Compute(s, geomean.Options{Strategy: strategy, Threads: cfg.threads})
		elapsed := time.Since(t0)
		if cfg.all {
			fmt.Fprintf(stdout, "%d ns to process %d characters: %.6g (%v)\n", elapsed.Nanoseconds(), len(s), answer, strategy)
		} else {
			fmt.Fprintf(stdout, "%d ns to process %d characters: %.6g\n", elapsed.Nanoseconds(), len(s), answer)
		}
	}
	return nil
}
