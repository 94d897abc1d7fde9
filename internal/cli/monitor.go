package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mweber/serialtest/internal/format"
	"github.com/mweber/serialtest/internal/serial"
	"github.com/spf13/cobra"
)

var monitorFormat textFlags

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print incoming data until interrupted",
	Long:  `Opens the serial port and prints everything the device sends until the command is interrupted with Ctrl-C.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, settings, err := linkSettings(cmd)
		if err != nil {
			return err
		}

		s, err := serial.OpenWithSettings(port, settings)
		if err != nil {
			return err
		}

		var closeOnce sync.Once
		closePort := func() {
			closeOnce.Do(func() {
				if err := s.Close(); err != nil {
					log.Warnf("Failed to close port: %v", err)
				}
			})
		}
		defer closePort()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		done := make(chan struct{})
		go func() {
			<-interrupt
			log.Debug("Interrupt received, closing port")
			close(done)
			closePort()
		}()

		f := monitorFormat.output()
		out := cmd.OutOrStdout()
		for {
			text, err := s.ReadString(f)

			select {
			case <-done:
				fmt.Fprintln(out)
				return nil
			default:
			}

			if err != nil {
				if errors.Is(err, serial.ErrTimeout) {
					continue
				}
				return err
			}

			fmt.Fprint(out, text)
			if f != format.Text {
				fmt.Fprint(out, " ")
			}
		}
	},
}

func init() {
	addFormatFlags(monitorCmd, &monitorFormat)
	rootCmd.AddCommand(monitorCmd)
}
