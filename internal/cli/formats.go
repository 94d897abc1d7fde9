package cli

import (
	"github.com/mweber/serialtest/internal/format"
	"github.com/spf13/cobra"
)

// textFlags holds a command's content format selection. Direction specific
// flags beat the bidirectional ones.
type textFlags struct {
	hex       bool
	binary    bool
	hexIn     bool
	binaryIn  bool
	hexOut    bool
	binaryOut bool
}

func (f *textFlags) input() format.TextFormat {
	switch {
	case f.binaryIn:
		return format.Binary
	case f.hexIn:
		return format.Hex
	}
	return f.common()
}

func (f *textFlags) output() format.TextFormat {
	switch {
	case f.binaryOut:
		return format.Binary
	case f.hexOut:
		return format.Hex
	}
	return f.common()
}

func (f *textFlags) common() format.TextFormat {
	switch {
	case f.binary:
		return format.Binary
	case f.hex:
		return format.Hex
	}
	return format.Text
}

func addFormatFlags(cmd *cobra.Command, f *textFlags) {
	cmd.Flags().BoolVarP(&f.hex, "hex", "H", false, "set hexadecimal mode")
	cmd.Flags().BoolVarP(&f.binary, "binary", "B", false, "set binary mode")
	cmd.MarkFlagsMutuallyExclusive("hex", "binary")
}

func addInputFormatFlags(cmd *cobra.Command, f *textFlags) {
	cmd.Flags().BoolVar(&f.hexIn, "hex-in", false, "set hexadecimal input mode")
	cmd.Flags().BoolVar(&f.binaryIn, "binary-in", false, "set binary input mode")
	cmd.MarkFlagsMutuallyExclusive("hex-in", "binary-in")
}

func addOutputFormatFlags(cmd *cobra.Command, f *textFlags) {
	cmd.Flags().BoolVar(&f.hexOut, "hex-out", false, "set hexadecimal output mode")
	cmd.Flags().BoolVar(&f.binaryOut, "binary-out", false, "set binary output mode")
	cmd.MarkFlagsMutuallyExclusive("hex-out", "binary-out")
}
