package config

// DefaultConfig returns a Config with the conventional 9600-8-N-1 link.
func DefaultConfig() *Config {
	return &Config{
		BaudRate:    9600,
		DataBits:    8,
		Parity:      "none",
		StopBits:    1,
		FlowControl: "none",
		Timeout:     "1s",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
