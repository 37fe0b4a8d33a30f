package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/internal/node/identity"
	"github.com/Morgane2t/decent-workshop-4/pkg/filesystem"
)

var (
	registerNodeID      int
	registerIdentityDir string
)

// newRegisterCmd creates a new register command
func newRegisterCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "register",
		Short: "Register a node's public key with the registry",
		Long:  "Read a node's identity file and publish its public key to the registry service",
		RunE:  runRegister,
	}

	cmd.Flags().IntVarP(&registerNodeID, "id", "i", 0, "Node ID (required)")
	cmd.Flags().StringVarP(&registerIdentityDir, "identity-dir", "o", "identity", "Directory containing identity files")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	identityPath, err := filesystem.SafePath(registerIdentityDir, fmt.Sprintf("node%d_identity.json", registerNodeID))
	if err != nil {
		return fmt.Errorf("invalid identity file path: %w", err)
	}

	data, err := os.ReadFile(identityPath)
	if err != nil {
		return fmt.Errorf("failed to read identity file: %w", err)
	}

	var record identity.NodeIdentity
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse identity file: %w", err)
	}
	if record.NodeID != registerNodeID {
		return fmt.Errorf("node ID mismatch: %d requested vs %d in identity file", registerNodeID, record.NodeID)
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	outcome, err := c.RegisterNode(record.NodeID, record.PubKey)
	if err != nil {
		return fmt.Errorf("failed to register node: %w", err)
	}

	fmt.Printf("Node %d registration outcome: %s\n", record.NodeID, outcome)
	return nil
}
