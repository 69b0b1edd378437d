package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

const (
	DefaultDataDir = ".bubbles"

	EnvDataDir = "BUBBLES_DATA_DIR"
	EnvSeed    = "BUBBLES_SEED"
	EnvPreset  = "BUBBLES_PRESET"
)

var (
	ErrInvalidInterval = errors.New("config: intervals must be positive")
	ErrInvalidBurst    = errors.New("config: burst bounds must satisfy 0 <= min <= max")
	ErrInvalidCapacity = errors.New("config: max bubbles must be between 1 and 50")
)

type Config struct {
	DataDir string      `yaml:"data_dir"`
	Seed    int64       `yaml:"seed"`
	Preset  string      `yaml:"preset,omitempty"`
	Field   FieldConfig `yaml:"field"`
}

type FieldConfig struct {
	Tick       time.Duration `yaml:"tick"`
	Grow       time.Duration `yaml:"grow"`
	Trim       time.Duration `yaml:"trim"`
	Highlight  time.Duration `yaml:"highlight"`
	Spread     time.Duration `yaml:"spread"`
	MaxBubbles int           `yaml:"max_bubbles"`
	BurstMin   int           `yaml:"burst_min"`
	BurstMax   int           `yaml:"burst_max"`
}

func DefaultConfig() *Config {
	opts := field.DefaultOptions()
	return &Config{
		DataDir: DefaultDataDir,
		Field: FieldConfig{
			Tick:       opts.Tick,
			Grow:       opts.Grow,
			Trim:       opts.Trim,
			Highlight:  opts.Highlight,
			Spread:     opts.Spread,
			MaxBubbles: opts.MaxBubbles,
			BurstMin:   opts.BurstMin,
			BurstMax:   opts.BurstMax,
		},
	}
}

// Load reads a YAML file over base. Fields absent from the file keep the
// values already in base.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads a .env file if one exists and applies BUBBLES_* variables.
func LoadEnv(cfg *Config, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvPreset); v != "" {
		cfg.Preset = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	return nil
}

func (c *Config) Validate() error {
	f := c.Field
	if f.Tick <= 0 || f.Grow <= 0 || f.Trim <= 0 || f.Highlight <= 0 || f.Spread < 0 {
		return fmt.Errorf("%w (tick=%v grow=%v trim=%v highlight=%v spread=%v)",
			ErrInvalidInterval, f.Tick, f.Grow, f.Trim, f.Highlight, f.Spread)
	}
	if f.BurstMin < 0 || f.BurstMax < f.BurstMin {
		return fmt.Errorf("%w (min=%d max=%d)", ErrInvalidBurst, f.BurstMin, f.BurstMax)
	}
	if f.MaxBubbles <= 0 || f.MaxBubbles > field.DefaultMaxBubbles {
		return fmt.Errorf("%w (got %d)", ErrInvalidCapacity, f.MaxBubbles)
	}
	return nil
}

func (c *Config) FieldOptions() field.Options {
	return field.Options{
		Tick:       c.Field.Tick,
		Grow:       c.Field.Grow,
		Trim:       c.Field.Trim,
		Highlight:  c.Field.Highlight,
		Spread:     c.Field.Spread,
		MaxBubbles: c.Field.MaxBubbles,
		BurstMin:   c.Field.BurstMin,
		BurstMax:   c.Field.BurstMax,
	}
}
