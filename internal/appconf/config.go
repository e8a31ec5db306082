// Package appconf holds application configuration read from an optional YAML
// file and overridden by command-line flags.
package appconf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RoutingConfig holds routing defaults used when a request batch carries no
// routing settings of its own.
type RoutingConfig struct {
	BusWaitTime float64 `yaml:"bus_wait_time" validate:"gte=0,lte=1000"`
	BusVelocity float64 `yaml:"bus_velocity" validate:"gt=0,lte=1000"`
}

type GTFSConfig struct {
	Source string `yaml:"source" validate:"omitempty"`
}

type Config struct {
	Env       Environment   `yaml:"-"`
	EnvName   string        `yaml:"env" validate:"omitempty,oneof=development test production prod"`
	LogLevel  string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat string        `yaml:"log_format" validate:"omitempty,oneof=json text"`
	Routing   RoutingConfig `yaml:"routing"`
	GTFS      GTFSConfig    `yaml:"gtfs"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Env:       Development,
		EnvName:   Development.String(),
		LogLevel:  "info",
		LogFormat: "json",
		Routing: RoutingConfig{
			BusWaitTime: 6,
			BusVelocity: 40,
		},
	}
}

// Load reads a YAML config file on top of Default and validates the result.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
