// Package identity manages a node's keypair on disk: the public half is
// published to the registry, the private half stays local and can be kept
// age-encrypted at rest.
package identity

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"filippo.io/age"

	"github.com/Morgane2t/decent-workshop-4/pkg/encryption"
	"github.com/Morgane2t/decent-workshop-4/pkg/filesystem"
	"github.com/Morgane2t/decent-workshop-4/pkg/security"
)

// NodeIdentity is the public half of a node's identity (node<id>_identity.json).
type NodeIdentity struct {
	NodeID    int    `json:"node_id"`
	PubKey    string `json:"pub_key"`
	CreatedAt string `json:"created_at"`
}

// Store exposes the key material a running node needs to register itself and
// open envelopes addressed to it.
type Store interface {
	NodeID() int
	PublicKeyText() string
	PrivateKey() *rsa.PrivateKey
}

func identityFileName(nodeID int) string {
	return fmt.Sprintf("node%d_identity.json", nodeID)
}

func privateKeyFileName(nodeID int) string {
	return fmt.Sprintf("node%d_private.key", nodeID)
}

// Generate creates a fresh keypair for the node and writes the identity files
// under identityDir. With encrypt set, the private key is age-encrypted with
// the passphrase; otherwise it is written in the clear for development use.
func Generate(identityDir string, nodeID int, encrypt bool, passphrase string, overwrite bool) error {
	if err := os.MkdirAll(identityDir, 0750); err != nil {
		return fmt.Errorf("failed to create identity directory: %w", err)
	}

	pair, err := encryption.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}

	pubKeyText, err := encryption.ExportPublicKey(pair.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to export public key: %w", err)
	}

	identityPath, err := filesystem.SafePath(identityDir, identityFileName(nodeID))
	if err != nil {
		return fmt.Errorf("invalid identity file path: %w", err)
	}
	if _, err := os.Stat(identityPath); err == nil && !overwrite {
		return fmt.Errorf("identity file %s already exists", identityPath)
	}

	record := NodeIdentity{
		NodeID:    nodeID,
		PubKey:    pubKeyText,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	identityBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := os.WriteFile(identityPath, identityBytes, 0600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}

	privKeyText, err := encryption.ExportPrivateKey(pair.PrivateKey)
	if err != nil {
		return fmt.Errorf("failed to export private key: %w", err)
	}
	defer security.ZeroString(&privKeyText)

	privateKeyPath, err := filesystem.SafePath(identityDir, privateKeyFileName(nodeID))
	if err != nil {
		return fmt.Errorf("invalid private key path: %w", err)
	}

	if encrypt {
		return writeEncryptedPrivateKey(privateKeyPath+".age", privKeyText, passphrase, overwrite)
	}

	if _, err := os.Stat(privateKeyPath); err == nil && !overwrite {
		return fmt.Errorf("private key file %s already exists", privateKeyPath)
	}
	if err := os.WriteFile(privateKeyPath, []byte(privKeyText), 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	return nil
}

func writeEncryptedPrivateKey(path, privKeyText, passphrase string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("encrypted key file %s already exists", path)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create encrypted key file: %w", err)
	}
	defer outFile.Close()

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create scrypt recipient: %w", err)
	}

	w, err := age.Encrypt(outFile, recipient)
	if err != nil {
		return fmt.Errorf("failed to create age encryption writer: %w", err)
	}
	if _, err := w.Write([]byte(privKeyText)); err != nil {
		return fmt.Errorf("failed to write encrypted private key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize age encryption: %w", err)
	}
	return nil
}
