package registry

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCmd creates a new status command
func newStatusCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "status",
		Short: "Probe the registry service",
		Long:  "Probe the registry service and print its status",
		RunE:  runStatus,
	}
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	status, err := c.Status()
	if err != nil {
		return fmt.Errorf("failed to get registry status: %w", err)
	}

	fmt.Printf("Registry status: %s\n", status)
	return nil
}
