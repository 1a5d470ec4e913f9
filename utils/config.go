package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Seed strategies for the initial universe
const (
	SeedModulo   = "modulo"
	SeedEmpty    = "empty"
	SeedPatterns = "patterns"
	SeedRandom   = "random"
)

// Config holds the configuration for the game
type Config struct {
	Width               uint32        `json:"width" env:"GOLIFE_WIDTH"`
	Height              uint32        `json:"height" env:"GOLIFE_HEIGHT"`
	FrameRate           time.Duration `json:"frame_rate" env:"GOLIFE_FRAME_RATE"`
	AutoRestart         bool          `json:"auto_restart" env:"GOLIFE_AUTO_RESTART"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"GOLIFE_STAGNATION_THRESHOLD"`
	UseMemoryPool       bool          `json:"use_memory_pool" env:"GOLIFE_USE_MEMORY_POOL"`
	MaxGenerations      int           `json:"max_generations" env:"GOLIFE_MAX_GENERATIONS"`
	Seed                string        `json:"seed" env:"GOLIFE_SEED"`
	RandomSeed          int64         `json:"random_seed" env:"GOLIFE_RANDOM_SEED"`
	RandomDensity       float64       `json:"random_density" env:"GOLIFE_RANDOM_DENSITY"`
	InjectionCount      int           `json:"injection_count" env:"GOLIFE_INJECTION_COUNT"`
	Interactive         bool          `json:"interactive" env:"GOLIFE_INTERACTIVE"`
	Color               bool          `json:"color" env:"GOLIFE_COLOR"`
	LogLevel            string        `json:"log_level" env:"GOLIFE_LOG_LEVEL"`
	LogFormat           string        `json:"log_format" env:"GOLIFE_LOG_FORMAT"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              32,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         false,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		Seed:                SeedModulo,
		RandomSeed:          1,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Interactive:         false,
		Color:               true,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// hclConfig mirrors Config for .hcl files. Unset attributes keep their current value.
type hclConfig struct {
	Width               *uint32  `hcl:"width,optional"`
	Height              *uint32  `hcl:"height,optional"`
	FrameRate           *string  `hcl:"frame_rate,optional"`
	AutoRestart         *bool    `hcl:"auto_restart,optional"`
	StagnationThreshold *int     `hcl:"stagnation_threshold,optional"`
	UseMemoryPool       *bool    `hcl:"use_memory_pool,optional"`
	MaxGenerations      *int     `hcl:"max_generations,optional"`
	Seed                *string  `hcl:"seed,optional"`
	RandomSeed          *int64   `hcl:"random_seed,optional"`
	RandomDensity       *float64 `hcl:"random_density,optional"`
	InjectionCount      *int     `hcl:"injection_count,optional"`
	Interactive         *bool    `hcl:"interactive,optional"`
	Color               *bool    `hcl:"color,optional"`
	LogLevel            *string  `hcl:"log_level,optional"`
	LogFormat           *string  `hcl:"log_format,optional"`
}

// LoadConfig loads configuration from a JSON or HCL file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		return config, loadHCL(filename, &config)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

func loadHCL(filename string, config *Config) error {
	var hc hclConfig
	if err := hclsimple.DecodeFile(filename, nil, &hc); err != nil {
		return errors.Wrapf(err, "[LoadConfig] failed to decode hcl file: %+v", filename)
	}

	if hc.FrameRate != nil {
		d, err := time.ParseDuration(*hc.FrameRate)
		if err != nil {
			return errors.Wrapf(err, "[LoadConfig] invalid frame_rate in %+v", filename)
		}
		config.FrameRate = d
	}

	setIf(&config.Width, hc.Width)
	setIf(&config.Height, hc.Height)
	setIf(&config.AutoRestart, hc.AutoRestart)
	setIf(&config.StagnationThreshold, hc.StagnationThreshold)
	setIf(&config.UseMemoryPool, hc.UseMemoryPool)
	setIf(&config.MaxGenerations, hc.MaxGenerations)
	setIf(&config.Seed, hc.Seed)
	setIf(&config.RandomSeed, hc.RandomSeed)
	setIf(&config.RandomDensity, hc.RandomDensity)
	setIf(&config.InjectionCount, hc.InjectionCount)
	setIf(&config.Interactive, hc.Interactive)
	setIf(&config.Color, hc.Color)
	setIf(&config.LogLevel, hc.LogLevel)
	setIf(&config.LogFormat, hc.LogFormat)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ApplyEnv overrides config fields from GOLIFE_* environment variables
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Load builds the configuration from defaults, an optional file and the environment
func Load(filename string) (Config, error) {
	config := DefaultConfig()
	if filename != "" {
		var err error
		if config, err = LoadConfig(filename); err != nil {
			return config, err
		}
	}
	if err := ApplyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return errors.Wrapf(ErrInvalidConfig, "width and height must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %v", c.FrameRate)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be at least 1, got %d", c.StagnationThreshold)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.InjectionCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "injection_count must not be negative, got %d", c.InjectionCount)
	}

	switch c.Seed {
	case SeedModulo, SeedEmpty, SeedPatterns, SeedRandom:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown seed %q", c.Seed)
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return errors.Wrapf(ErrInvalidConfig, "unknown log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Overlay copies every field of overrides that differs from defaults onto base
func Overlay(base, overrides, defaults Config) Config {
	out := reflect.ValueOf(&base).Elem()
	over := reflect.ValueOf(overrides)
	def := reflect.ValueOf(defaults)

	for i := 0; i < out.NumField(); i++ {
		if !reflect.DeepEqual(over.Field(i).Interface(), def.Field(i).Interface()) {
			out.Field(i).Set(over.Field(i))
		}
	}
	return base
}
