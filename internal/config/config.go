// Package config holds runtime configuration: defaults, environment
// overrides and validation. Command-line flags are applied on top by the cli
// package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/image-dataset-tools/internal/dataset"
)

// LogLevel controls how much the CLI and server log to stderr.
type LogLevel string

const (
	LogInfo  LogLevel = "info"  // Errors and notable events (default).
	LogDebug LogLevel = "debug" // Adds per-request and per-stage detail.
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel      = "IMAGE_DATASET_LOG_LEVEL"
	EnvProbePolicy   = "IMAGE_DATASET_PROBE_POLICY"
	EnvMaxHeight     = "IMAGE_DATASET_MAX_HEIGHT"
	EnvMaxWidth      = "IMAGE_DATASET_MAX_WIDTH"
	EnvPreviewWidth  = "IMAGE_DATASET_PREVIEW_WIDTH"
	EnvPreviewHeight = "IMAGE_DATASET_PREVIEW_HEIGHT"
)

// Config holds all runtime settings.
type Config struct {
	LogLevel LogLevel

	// ProbePolicy decides whether one undecodable image aborts probing.
	// Default: strict.
	ProbePolicy dataset.ProbePolicy

	// Filter limits used when none are given. Default: 500x500.
	MaxHeight int
	MaxWidth  int

	// Box that browser previews are scaled to fit. Default: 800x600.
	PreviewWidth  int
	PreviewHeight int
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      LogInfo,
		ProbePolicy:   dataset.ProbeStrict,
		MaxHeight:     500,
		MaxWidth:      500,
		PreviewWidth:  800,
		PreviewHeight: 600,
	}
}

// FromEnv returns DefaultConfig overlaid with any IMAGE_DATASET_* variables.
func FromEnv() (*Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = LogLevel(v)
	}
	if v, ok := lookup(EnvProbePolicy); ok {
		cfg.ProbePolicy = dataset.ProbePolicy(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMaxHeight, &cfg.MaxHeight},
		{EnvMaxWidth, &cfg.MaxWidth},
		{EnvPreviewWidth, &cfg.PreviewWidth},
		{EnvPreviewHeight, &cfg.PreviewHeight},
	}
	for _, e := range ints {
		v, ok := lookup(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", e.name, v)
		}
		*e.dst = n
	}

	return cfg, cfg.Validate()
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == LogDebug
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case LogInfo, LogDebug:
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q (must be %s or %s)", c.LogLevel, LogInfo, LogDebug))
	}
	if _, err := dataset.ParseProbePolicy(string(c.ProbePolicy)); err != nil {
		errs = append(errs, err)
	}
	if c.MaxHeight < 0 || c.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("filter limits must not be negative (got %dx%d)", c.MaxHeight, c.MaxWidth))
	}
	if c.PreviewWidth <= 0 || c.PreviewHeight <= 0 {
		errs = append(errs, fmt.Errorf("preview box must be positive (got %dx%d)", c.PreviewWidth, c.PreviewHeight))
	}

	return errors.Join(errs...)
}
