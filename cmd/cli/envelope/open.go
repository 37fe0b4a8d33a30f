package envelope

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morgane2t/decent-workshop-4/internal/node/identity"
	"github.com/Morgane2t/decent-workshop-4/pkg/encryption"
	"github.com/Morgane2t/decent-workshop-4/pkg/filesystem"
)

var (
	openNodeID          int
	openIdentityDir     string
	openEnvelopeFile    string
	openDecryptKey      bool
	openAgePasswordFile string
)

// newOpenCmd creates a new open command
func newOpenCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "open",
		Short: "Open an envelope with a node's private key",
		Long:  "Open an envelope JSON file with the node's private key and print the plaintext",
		RunE:  runOpen,
	}

	cmd.Flags().IntVarP(&openNodeID, "id", "i", 0, "Node ID (required)")
	cmd.Flags().StringVarP(&openIdentityDir, "identity-dir", "o", "identity", "Directory containing identity files")
	cmd.Flags().StringVarP(&openEnvelopeFile, "envelope", "e", "", "Path to envelope JSON file (required)")
	cmd.Flags().BoolVarP(&openDecryptKey, "decrypt-private-key", "d", false, "Decrypt node private key")
	cmd.Flags().StringVarP(&openAgePasswordFile, "identity-password-file", "k", "", "Path to file containing password for decrypting .age encrypted node private key")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("envelope")

	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := filesystem.ValidateFilePath(openEnvelopeFile); err != nil {
		return fmt.Errorf("invalid envelope file path: %w", err)
	}

	data, err := os.ReadFile(openEnvelopeFile)
	if err != nil {
		return fmt.Errorf("failed to read envelope file: %w", err)
	}

	var env encryption.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse envelope file: %w", err)
	}

	store, err := identity.NewFileStore(openIdentityDir, openNodeID, openDecryptKey, openAgePasswordFile)
	if err != nil {
		return fmt.Errorf("failed to load identity: %w", err)
	}

	plaintext, err := encryption.OpenEnvelope(&env, store.PrivateKey())
	if err != nil {
		return fmt.Errorf("failed to open envelope: %w", err)
	}

	fmt.Println(plaintext)
	return nil
}
