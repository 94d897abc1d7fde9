package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mweber/serialtest/internal/serial"
)

// Config is the top-level configuration struct. It carries the serial-link
// defaults so they need not be repeated as flags on every invocation.
type Config struct {
	Port        string        `yaml:"port"`
	BaudRate    int           `yaml:"baud_rate"`
	DataBits    int           `yaml:"data_bits"`
	Parity      string        `yaml:"parity"`
	StopBits    int           `yaml:"stop_bits"`
	FlowControl string        `yaml:"flow_control"`
	Timeout     string        `yaml:"timeout"`
	Logging     LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config. Values not set
// in the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// SerialSettings converts the configured link values into serial settings.
func (c *Config) SerialSettings() (serial.Settings, error) {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return serial.Settings{}, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}

	return serial.Settings{
		BaudRate:    c.BaudRate,
		DataBits:    c.DataBits,
		Parity:      c.Parity,
		StopBits:    c.StopBits,
		FlowControl: c.FlowControl,
		Timeout:     timeout,
	}, nil
}
