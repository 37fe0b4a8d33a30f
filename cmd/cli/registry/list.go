package registry

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCmd creates a new list command
func newListCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "list",
		Short: "List registered nodes",
		Long:  "List all registered nodes in insertion order",
		RunE:  runList,
	}
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	nodes, err := c.GetNodeRegistry()
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}

	if len(nodes) == 0 {
		fmt.Println("No nodes registered")
		return nil
	}

	for _, node := range nodes {
		fmt.Printf("node %d\t%s\n", node.NodeID, truncateKey(node.PubKey))
	}
	return nil
}

// truncateKey keeps listings readable; exported keys run to hundreds of characters.
func truncateKey(key string) string {
	const max = 40
	if len(key) <= max {
		return key
	}
	return key[:max] + "..."
}
