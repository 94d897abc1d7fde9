package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mweber/serialtest/internal/config"
	"github.com/mweber/serialtest/internal/format"
	"github.com/mweber/serialtest/internal/serial"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is the current version of the serialtest application.
var version = "1.0.0"

var (
	cfgFile     string
	verbose     bool
	portFlag    string
	baudRate    int
	dataBits    int
	parity      string
	stopBits    int
	flowControl string
	timeout     string
	log         *logrus.Logger
)

// rootCmd is the base command for serialtest.
var rootCmd = &cobra.Command{
	Use:   "serialtest",
	Short: "Automated testing for serial port devices",
	Long: `serialtest talks to serial port devices: it sends data, checks
responses and runs scripted test suites written in a small
test-definition language.

The serial link is configured through flags or a YAML configuration
file (serialtest.yaml); flags take precedence over the file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "serialtest.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "serial port OS specific name")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "serial port baud rate")
	rootCmd.PersistentFlags().IntVarP(&dataBits, "databits", "d", 8, "serial port number of data bits")
	rootCmd.PersistentFlags().StringVarP(&parity, "parity", "P", "none", "serial port parity (none, odd, even)")
	rootCmd.PersistentFlags().IntVarP(&stopBits, "stopbits", "s", 1, "serial port stop bits")
	rootCmd.PersistentFlags().StringVarP(&flowControl, "flowcontrol", "f", "none", "serial port flow control mode")
	rootCmd.PersistentFlags().StringVarP(&timeout, "timeout", "t", "1s", "serial port timeout (duration or milliseconds)")

	// Initialize default logger (level adjusted in PersistentPreRun)
	log = logrus.New()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration file. A --config flag pointing at a
// missing file is an error; the default path is optional.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if cmd.Flags().Changed("config") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return config.DefaultConfig(), nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// linkSettings resolves the serial link from flags and the configuration
// file. Flags beat the file, the file beats the defaults.
func linkSettings(cmd *cobra.Command) (string, serial.Settings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", serial.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = portFlag
	}
	if flags.Changed("baud") {
		cfg.BaudRate = baudRate
	}
	if flags.Changed("databits") {
		cfg.DataBits = dataBits
	}
	if flags.Changed("parity") {
		cfg.Parity = parity
	}
	if flags.Changed("stopbits") {
		cfg.StopBits = stopBits
	}
	if flags.Changed("flowcontrol") {
		cfg.FlowControl = flowControl
	}
	if flags.Changed("timeout") {
		duration, ok := format.GetTimeValue(timeout)
		if !ok {
			return "", serial.Settings{}, fmt.Errorf("invalid timeout %q", timeout)
		}
		cfg.Timeout = duration.String()
	}

	applyLogLevel(cfg.Logging.Level)

	if err := config.Validate(cfg); err != nil {
		return "", serial.Settings{}, err
	}

	if cfg.Port == "" {
		return "", serial.Settings{}, errors.New("no port selected: use --port or set it in the config file")
	}

	settings, err := cfg.SerialSettings()
	if err != nil {
		return "", serial.Settings{}, err
	}

	log.Debugf("Using port %s at %d baud", cfg.Port, settings.BaudRate)
	return cfg.Port, settings, nil
}

// applyLogLevel sets the logger level from the configuration unless
// --verbose already forced debug output.
func applyLogLevel(level string) {
	if verbose {
		return
	}
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
}
