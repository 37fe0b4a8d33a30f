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
	sealIdentityDir string
	sealRecipientID int
	sealMessage     string
	sealOutput      string
)

// newSealCmd creates a new seal command
func newSealCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "seal",
		Short: "Seal a message for a recipient",
		Long:  "Seal a message with the recipient's published public key and print or write the envelope JSON",
		RunE:  runSeal,
	}

	cmd.Flags().IntVarP(&sealRecipientID, "recipient", "r", 0, "Recipient node ID (required)")
	cmd.Flags().StringVarP(&sealIdentityDir, "identity-dir", "o", "identity", "Directory containing identity files")
	cmd.Flags().StringVarP(&sealMessage, "message", "m", "", "Message to seal (required)")
	cmd.Flags().StringVar(&sealOutput, "out", "", "Write envelope JSON to this file instead of stdout")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runSeal(cmd *cobra.Command, args []string) error {
	identityPath, err := filesystem.SafePath(sealIdentityDir, fmt.Sprintf("node%d_identity.json", sealRecipientID))
	if err != nil {
		return fmt.Errorf("invalid identity file path: %w", err)
	}

	data, err := os.ReadFile(identityPath)
	if err != nil {
		return fmt.Errorf("failed to read recipient identity file: %w", err)
	}

	var record identity.NodeIdentity
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse recipient identity file: %w", err)
	}

	env, err := encryption.SealEnvelope(sealMessage, record.PubKey)
	if err != nil {
		return fmt.Errorf("failed to seal envelope: %w", err)
	}

	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if sealOutput != "" {
		if err := filesystem.ValidateFilePath(sealOutput); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}
		if err := os.WriteFile(sealOutput, out, 0600); err != nil {
			return fmt.Errorf("failed to write envelope file: %w", err)
		}
		fmt.Printf("Envelope written to %s\n", sealOutput)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
