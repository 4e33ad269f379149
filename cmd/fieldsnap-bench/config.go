package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultWorkers  = 4
	defaultLogLevel = "info"
)

// config holds all configuration for the benchmark run.
type config struct {
	// Dir is the benchmark corpus root: one subdirectory per document.
	Dir string

	// Workers bounds how many documents are processed concurrently.
	Workers int

	// Orderings runs every stage permutation instead of just the
	// canonical pipeline.
	Orderings bool

	// Dedup appends the duplicate-removal stages.
	Dedup bool

	LogLevel string
}

func defaultConfig() *config {
	return &config{
		Dir:      ".",
		Workers:  defaultWorkers,
		LogLevel: defaultLogLevel,
	}
}

// loadFromFlags parses command line flags, environment variables, and
// defaults into a configuration.
func loadFromFlags() (*config, error) {
	cfg := defaultConfig()

	viper.SetEnvPrefix("FIELDSNAP")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.Dir)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("orderings", cfg.Orderings)
	viper.SetDefault("dedup", cfg.Dedup)
	viper.SetDefault("loglevel", cfg.LogLevel)

	pflag.String("dir", cfg.Dir, "Benchmark corpus root (one subdirectory per document)")
	pflag.Int("workers", cfg.Workers, "Documents processed concurrently")
	pflag.Bool("orderings", cfg.Orderings, "Score every stage ordering, not just the canonical one")
	pflag.Bool("dedup", cfg.Dedup, "Append duplicate-removal stages")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("orderings", pflag.Lookup("orderings"))
	_ = viper.BindPFlag("dedup", pflag.Lookup("dedup"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nfieldsnap-bench - score field-boundary refinement against ground truth\n\n")
		fmt.Fprintf(os.Stderr, "Each document directory contains fields.json and truth.json, plus any of\n")
		fmt.Fprintf(os.Stderr, "page.png (page bitmap) and ocr.json (cached OCR result).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  FIELDSNAP_DIR        Benchmark corpus root\n")
		fmt.Fprintf(os.Stderr, "  FIELDSNAP_WORKERS    Concurrent documents\n")
		fmt.Fprintf(os.Stderr, "  FIELDSNAP_ORDERINGS  Score every stage ordering\n")
		fmt.Fprintf(os.Stderr, "  FIELDSNAP_DEDUP      Append duplicate-removal stages\n")
		fmt.Fprintf(os.Stderr, "  FIELDSNAP_LOGLEVEL   Log level\n")
	}

	pflag.Parse()

	cfg.Dir = viper.GetString("dir")
	cfg.Workers = viper.GetInt("workers")
	cfg.Orderings = viper.GetBool("orderings")
	cfg.Dedup = viper.GetBool("dedup")
	cfg.LogLevel = viper.GetString("loglevel")

	if expanded, err := filepath.Abs(cfg.Dir); err == nil {
		cfg.Dir = expanded
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	info, err := os.Stat(c.Dir)
	if err != nil {
		return fmt.Errorf("cannot access benchmark directory %s: %w", c.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.Dir)
	}
	return nil
}
