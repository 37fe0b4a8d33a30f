package envelope

import (
	"github.com/spf13/cobra"
)

// NewEnvelopeCmd creates a new envelope command group
func NewEnvelopeCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "envelope",
		Short: "Envelope commands",
		Long:  "Commands for sealing and opening envelopes offline",
	}

	cmd.AddCommand(newSealCmd())
	cmd.AddCommand(newOpenCmd())

	return cmd
}
