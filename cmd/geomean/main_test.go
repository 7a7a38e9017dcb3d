package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pcnagy/geomean-lab/geomean"
)

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	path := writeInput(t, []byte{2, 4, 8})
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-threads", "3", path}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^\d+ ns to process 3 characters: 4\n$`).Match(stdout.Bytes()) {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected log output %q", stderr.String())
	}
}

func TestRunAll(t *testing.T) {
	path := writeInput(t, []byte{2, 0, 4, 8, 0})
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-all", "-chunk", "2", "-v", path, path}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	strategies := geomean.Strategies(2)
	if len(lines) != len(strategies) {
		t.Fatalf("got %v lines, want %v: %q", len(lines), len(strategies), stdout.String())
	}
	// Product 4096 over ten bytes: 2^(12/10).
	for i, line := range lines {
		want := regexp.MustCompile(`^\d+ ns to process 10 characters: 2\.2974 \(` + regexp.QuoteMeta(strategies[i].String()) + `\)$`)
		if !want.MatchString(line) {
			t.Errorf("line %v: %q", i, line)
		}
	}
	if !strings.Contains(stderr.String(), "geomean: cpu: ") {
		t.Errorf("verbose mode did not log the CPU: %q", stderr.String())
	}
}

func TestRunEmpty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(stdout.String(), " ns to process 0 characters: 1\n") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestParseConfigEnvironment(t *testing.T) {
	t.Setenv("GEOMEAN_STRATEGY", "chunked-queue:9")
	t.Setenv("GEOMEAN_THREADS", "4")
	t.Setenv("GEOMEAN_CHUNK", "")
	cfg, err := parseConfig([]string{"a", "b"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.strategy != geomean.StrategyChunkedQueue(9) || cfg.threads != 4 {
		t.Errorf("got %+v", cfg)
	}
	if len(cfg.args) != 2 {
		t.Errorf("args: %q", cfg.args)
	}

	cfg, err = parseConfig([]string{"-strategy", "guided", "-threads", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.strategy != geomean.StrategyGuided() || cfg.threads != 2 {
		t.Errorf("flags did not override the environment: %+v", cfg)
	}
}

func TestParseConfigChunkOverride(t *testing.T) {
	t.Setenv("GEOMEAN_CHUNK", "64")
	cfg, err := parseConfig([]string{"-strategy", "chunked-queue:9"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.strategy != geomean.StrategyChunkedQueue(64) {
		t.Errorf("got %v", cfg.strategy)
	}
}

func TestAllKeepsSelectedChunk(t *testing.T) {
	t.Setenv("GEOMEAN_CHUNK", "")
	cfg, err := parseConfig([]string{"-all", "-strategy", "chunked-queue:9"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range cfg.strategies() {
		if s.Kind == geomean.ChunkedQueueKind {
			found = true
			if s != geomean.StrategyChunkedQueue(9) {
				t.Errorf("got %v, want chunked-queue:9", s)
			}
		}
	}
	if !found {
		t.Error("no chunked queue in -all mode")
	}

	cfg, err = parseConfig([]string{"-all", "-chunk", "5", "-strategy", "chunked-queue:9"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if s := cfg.strategies()[3]; s != geomean.StrategyChunkedQueue(5) {
		t.Errorf("-chunk did not win: got %v", s)
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, c := range []struct {
		env, value string
		args       []string
		want       error
	}{
		{args: []string{"-strategy", "nope"}, want: geomean.ErrUnknownStrategy},
		{args: []string{"-chunk", "-1"}, want: geomean.ErrInvalidChunk},
		{args: []string{"-h"}, want: flag.ErrHelp},
		{env: "GEOMEAN_THREADS", value: "many"},
		{env: "GEOMEAN_CHUNK", value: "big"},
	} {
		if c.env != "" {
			t.Setenv(c.env, c.value)
		}
		_, err := parseConfig(c.args, &bytes.Buffer{})
		if err == nil || (c.want != nil && !errors.Is(err, c.want)) {
			t.Errorf("%v %v=%v: got %v, want %v", c.args, c.env, c.value, err, c.want)
		}
		if c.env != "" {
			t.Setenv(c.env, "")
		}
	}
}
