// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Buffer, bisector and contractor names accepted in a file. An empty
// buffer or bisector name and an empty contractor list select the engine
// defaults.
var (
	BufferNames     = []string{"stack", "queue", "largest-first", "depth", "min-lb", "double-heap"}
	BisectorNames   = []string{"largest-first", "round-robin", "smear-max", "smear-sum", "smear-relative"}
	ContractorNames = []string{"hc4", "newton", "krawczyk", "identity"}
	LogLevelNames   = []string{"debug", "info", "warn", "error"}
)

// Optimizer holds the settings only Minimize reads.
type Optimizer struct {
	RelPrec float64 `yaml:"rel_prec"`
	AbsPrec float64 `yaml:"abs_prec"`
	Samples int     `yaml:"samples"`
	Seed    uint64  `yaml:"seed"`
}

// Config is the file layout.
type Config struct {
	Prec       float64       `yaml:"prec"`
	EpsH       float64       `yaml:"eps_h"`
	Ratio      float64       `yaml:"ratio"`
	MaxIter    int           `yaml:"max_iter"`
	MaxCells   int           `yaml:"max_cells"`
	TimeLimit  time.Duration `yaml:"time_limit"`
	Buffer     string        `yaml:"buffer"`
	Bisector   string        `yaml:"bisector"`
	Contractor []string      `yaml:"contractor"`
	Certify    bool          `yaml:"certify"`
	Infeasible bool          `yaml:"infeasible"`
	Workers    int           `yaml:"workers"`
	LogLevel   string        `yaml:"log_level"`
	Optimizer  Optimizer     `yaml:"optimizer"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Prec:      1e-8,
		Ratio:     0.1,
		MaxIter:   50,
		Certify:   true,
		Workers:   1,
		LogLevel:  "info",
		Optimizer: Optimizer{RelPrec: 1e-3, AbsPrec: 1e-7, Samples: 4, Seed: 1},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes data over Default and validates the result. Unknown keys
// are errors.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate reports every value outside its domain.
func (c Config) Validate() error {
	var errs []error
	bad := func(key string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s: %w", key, fmt.Sprintf(format, args...), ErrInvalid))
	}
	if !(c.Prec >= 0) || math.IsInf(c.Prec, 1) {
		bad("prec", "%g must be finite and >= 0", c.Prec)
	}
	if !(c.EpsH >= 0) || math.IsInf(c.EpsH, 1) {
		bad("eps_h", "%g must be finite and >= 0", c.EpsH)
	}
	if !(c.Ratio >= 0 && c.Ratio < 1) {
		bad("ratio", "%g must be in [0, 1)", c.Ratio)
	}
	if c.MaxIter < 1 {
		bad("max_iter", "%d must be >= 1", c.MaxIter)
	}
	if c.MaxCells < 0 {
		bad("max_cells", "%d must be >= 0", c.MaxCells)
	}
	if c.TimeLimit < 0 {
		bad("time_limit", "%v must be >= 0", c.TimeLimit)
	}
	if c.Buffer != "" && !slices.Contains(BufferNames, c.Buffer) {
		bad("buffer", "%q is not one of %s", c.Buffer, strings.Join(BufferNames, ", "))
	}
	if c.Bisector != "" && !slices.Contains(BisectorNames, c.Bisector) {
		bad("bisector", "%q is not one of %s", c.Bisector, strings.Join(BisectorNames, ", "))
	}
	for _, name := range c.Contractor {
		if !slices.Contains(ContractorNames, name) {
			bad("contractor", "%q is not one of %s", name, strings.Join(ContractorNames, ", "))
		}
	}
	if c.Workers < 1 {
		bad("workers", "%d must be >= 1", c.Workers)
	}
	if !slices.Contains(LogLevelNames, strings.ToLower(c.LogLevel)) {
		bad("log_level", "%q is not one of %s", c.LogLevel, strings.Join(LogLevelNames, ", "))
	}
	o := c.Optimizer
	if !(o.RelPrec >= 0) {
		bad("optimizer.rel_prec", "%g must be >= 0", o.RelPrec)
	}
	if !(o.AbsPrec >= 0) {
		bad("optimizer.abs_prec", "%g must be >= 0", o.AbsPrec)
	}
	if o.Samples < 0 {
		bad("optimizer.samples", "%d must be >= 0", o.Samples)
	}

	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel (info when unknown).
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return l
}

// ApplyEnv overrides c from IVLATH_PREC, IVLATH_MAX_CELLS,
// IVLATH_TIME_LIMIT, IVLATH_WORKERS and IVLATH_LOG_LEVEL, then validates.
func (c *Config) ApplyEnv() error {
	var errs []error
	if v := os.Getenv("IVLATH_PREC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("IVLATH_PREC", err))
		c.Prec = f
	}
	if v := os.Getenv("IVLATH_MAX_CELLS"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("IVLATH_MAX_CELLS", err))
		c.MaxCells = n
	}
	if v := os.Getenv("IVLATH_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, envErr("IVLATH_TIME_LIMIT", err))
		c.TimeLimit = d
	}
	if v := os.Getenv("IVLATH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("IVLATH_WORKERS", err))
		c.Workers = n
	}
	if v := os.Getenv("IVLATH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	return c.Validate()
}

func envErr(name string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %v: %w", name, err, ErrInvalid)
}
