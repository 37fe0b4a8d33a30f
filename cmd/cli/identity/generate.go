package identity

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/cmd/cli/utils"
	"github.com/Morgane2t/decent-workshop-4/internal/node/identity"
)

var (
	identityNodeID int
	identityDir    string
	encryptKey     bool
	overwrite      bool
)

// NewGenerateIdentityCmd creates a new generate identity command
func NewGenerateIdentityCmd(ctx context.Context) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate identity files with optional Age-encrypted private keys for a node",
		Long:  "Generate identity files with optional Age-encrypted private keys for a node",
		RunE:  runGenerateIdentity,
	}

	cmd.Flags().IntVarP(&identityNodeID, "id", "i", 0, "Node ID (required)")
	cmd.Flags().StringVarP(&identityDir, "output-dir", "o", "identity", "Output directory for identity files")
	cmd.Flags().BoolVarP(&encryptKey, "encrypt", "e", false, "Encrypt private key with Age (recommended for production)")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite identity files if they already exist")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runGenerateIdentity(cmd *cobra.Command, args []string) error {
	var passphrase string
	if encryptKey {
		var err error
		passphrase, err = utils.RequestPassword()
		if err != nil {
			return err
		}
	} else {
		fmt.Println("WARNING: Private key will NOT be encrypted. This is not recommended for production environments.")
		fmt.Println("Use --encrypt flag to enable encryption.")
	}

	if err := identity.Generate(identityDir, identityNodeID, encryptKey, passphrase, overwrite); err != nil {
		return fmt.Errorf("failed to generate identity for node %d: %w", identityNodeID, err)
	}

	fmt.Printf("Successfully generated identity files for node %d\n", identityNodeID)
	return nil
}
