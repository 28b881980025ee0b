package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bonsai/internal/growth"
)

const (
	DefaultTimeStep = 0.03
	DefaultWait     = 4.0
	DefaultBase     = 1
	DefaultTheme    = "season"
	MaxBase         = 2
)

var ErrInvalidConfig = errors.New("config: invalid value")

// ConfigError names the field that failed validation.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s = %v: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

type Config struct {
	Life           int      `yaml:"life"`
	Multiplier     int      `yaml:"multiplier"`
	Seed           int64    `yaml:"seed"`
	Leaves         []string `yaml:"leaves"`
	Live           bool     `yaml:"live"`
	TimeStep       float64  `yaml:"time_step"`
	Infinite       bool     `yaml:"infinite"`
	Wait           float64  `yaml:"wait"`
	Procedural     bool     `yaml:"procedural"`
	Base           int      `yaml:"base"`
	Message        string   `yaml:"message"`
	MessageTimeout float64  `yaml:"message_timeout"`
	Screensaver    bool     `yaml:"screensaver"`
	Print          bool     `yaml:"print"`
	Verbose        bool     `yaml:"verbose"`
	SaveFile       string   `yaml:"save_file"`
	LoadFile       string   `yaml:"load_file"`
	Lifetime       float64  `yaml:"lifetime"`
	Theme          string   `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Life:       growth.DefaultLife,
		Multiplier: growth.DefaultMultiplier,
		Leaves:     append([]string(nil), growth.DefaultLeaves...),
		TimeStep:   DefaultTimeStep,
		Wait:       DefaultWait,
		Base:       DefaultBase,
		Theme:      DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	switch {
	case c.Life < 0:
		return &ConfigError{"life", c.Life, ErrInvalidConfig}
	case c.Multiplier < 0:
		return &ConfigError{"multiplier", c.Multiplier, ErrInvalidConfig}
	case c.TimeStep <= 0:
		return &ConfigError{"time_step", c.TimeStep, ErrInvalidConfig}
	case c.Wait < 0:
		return &ConfigError{"wait", c.Wait, ErrInvalidConfig}
	case c.Base < 0 || c.Base > MaxBase:
		return &ConfigError{"base", c.Base, ErrInvalidConfig}
	case c.MessageTimeout < 0:
		return &ConfigError{"message_timeout", c.MessageTimeout, ErrInvalidConfig}
	case c.Lifetime < 0:
		return &ConfigError{"lifetime", c.Lifetime, ErrInvalidConfig}
	}
	return nil
}

// Named reports whether this run creates a tree that grows over real time.
func (c *Config) Named() bool {
	return c.Lifetime > 0
}

// Normalize applies the implied settings of screensaver and named modes.
func (c *Config) Normalize() {
	if c.Screensaver {
		c.Live = true
		c.Infinite = true
	}
	if c.Named() {
		c.Live = true
		c.Procedural = true
	}
}

// Params converts the growth settings for the simulator.
func (c *Config) Params() growth.Params {
	return growth.Params{
		Life:       c.Life,
		Multiplier: c.Multiplier,
		Leaves:     c.Leaves,
		Procedural: c.Procedural,
	}
}

// ParseLeaves splits a comma separated leaf list, dropping empty entries.
func ParseLeaves(list string) []string {
	parts := strings.Split(list, ",")
	leaves := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			leaves = append(leaves, p)
		}
	}
	return leaves
}
