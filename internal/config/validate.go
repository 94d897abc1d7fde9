package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the Config for valid link and logging values.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.BaudRate <= 0 {
		errs = append(errs, fmt.Sprintf("baud_rate must be positive (got %d)", cfg.BaudRate))
	}

	switch cfg.DataBits {
	case 5, 6, 7, 8:
	default:
		errs = append(errs, fmt.Sprintf("data_bits must be 5, 6, 7 or 8 (got %d)", cfg.DataBits))
	}

	switch cfg.Parity {
	case "none", "odd", "even":
	default:
		errs = append(errs, fmt.Sprintf("parity must be one of: none, odd, even (got %q)", cfg.Parity))
	}

	switch cfg.StopBits {
	case 1, 2:
	default:
		errs = append(errs, fmt.Sprintf("stop_bits must be 1 or 2 (got %d)", cfg.StopBits))
	}

	if cfg.FlowControl != "none" {
		errs = append(errs, fmt.Sprintf("flow_control must be none (got %q)", cfg.FlowControl))
	}

	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			errs = append(errs, fmt.Sprintf("timeout is not a valid duration: %v", err))
		}
	}

	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	return nil
}
