package identity

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"filippo.io/age"
	"golang.org/x/term"

	"github.com/Morgane2t/decent-workshop-4/pkg/encryption"
	"github.com/Morgane2t/decent-workshop-4/pkg/filesystem"
	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/security"
)

type fileStore struct {
	nodeID        int
	publicKeyText string
	privateKey    *rsa.PrivateKey
}

var _ Store = (*fileStore)(nil)

// NewFileStore loads a node's identity from identityDir. With decrypt set it
// expects an age-encrypted private key and reads the passphrase from
// agePasswordFile, or prompts on the terminal when the file is empty.
func NewFileStore(identityDir string, nodeID int, decrypt bool, agePasswordFile string) (Store, error) {
	privKeyText, err := loadPrivateKey(identityDir, nodeID, decrypt, agePasswordFile)
	if err != nil {
		return nil, err
	}
	defer security.ZeroString(&privKeyText)

	privateKey, err := encryption.ImportPrivateKey(privKeyText)
	if err != nil {
		return nil, fmt.Errorf("invalid private key for node %d: %w", nodeID, err)
	}

	identityPath, err := filesystem.SafePath(identityDir, identityFileName(nodeID))
	if err != nil {
		return nil, fmt.Errorf("invalid identity file path: %w", err)
	}
	data, err := os.ReadFile(identityPath)
	if err != nil {
		return nil, fmt.Errorf("missing identity file for node %d: %w", nodeID, err)
	}

	var record NodeIdentity
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse identity file for node %d: %w", nodeID, err)
	}
	if record.NodeID != nodeID {
		return nil, fmt.Errorf("node ID mismatch: %d requested vs %d in identity file", nodeID, record.NodeID)
	}

	// The published key must be the one the private key derives, otherwise
	// peers would seal envelopes this node cannot open.
	derived, err := encryption.ExportPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to export public key: %w", err)
	}
	if derived != record.PubKey {
		return nil, fmt.Errorf("identity file public key does not match private key for node %d", nodeID)
	}

	return &fileStore{
		nodeID:        nodeID,
		publicKeyText: record.PubKey,
		privateKey:    privateKey,
	}, nil
}

func (s *fileStore) NodeID() int {
	return s.nodeID
}

func (s *fileStore) PublicKeyText() string {
	return s.publicKeyText
}

func (s *fileStore) PrivateKey() *rsa.PrivateKey {
	return s.privateKey
}

func loadPrivateKey(identityDir string, nodeID int, decrypt bool, agePasswordFile string) (string, error) {
	encryptedKeyPath, err := filesystem.SafePath(identityDir, privateKeyFileName(nodeID)+".age")
	if err != nil {
		return "", fmt.Errorf("invalid encrypted key path for node %d: %w", nodeID, err)
	}

	unencryptedKeyPath, err := filesystem.SafePath(identityDir, privateKeyFileName(nodeID))
	if err != nil {
		return "", fmt.Errorf("invalid key path for node %d: %w", nodeID, err)
	}

	if decrypt {
		if _, err := os.Stat(encryptedKeyPath); err != nil {
			return "", fmt.Errorf("failed to check encrypted private key for node %d at %s: %w", nodeID, encryptedKeyPath, err)
		}

		logger.Infof("Using age-encrypted private key for node %d", nodeID)

		encryptedFile, err := os.Open(encryptedKeyPath)
		if err != nil {
			return "", fmt.Errorf("failed to open encrypted key file: %w", err)
		}
		defer encryptedFile.Close()

		var passphrase string
		if agePasswordFile != "" {
			data, err := os.ReadFile(agePasswordFile)
			if err != nil {
				return "", fmt.Errorf("failed to read age password file %s: %w", agePasswordFile, err)
			}
			passphrase = strings.TrimSpace(string(data))
			security.ZeroBytes(data)
		} else {
			fmt.Print("Enter passphrase to decrypt private key: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return "", fmt.Errorf("failed to read passphrase: %w", err)
			}
			passphrase = string(bytePassword)
			security.ZeroBytes(bytePassword)
		}

		ageIdentity, err := age.NewScryptIdentity(passphrase)
		if err != nil {
			return "", fmt.Errorf("failed to create identity for decryption: %w", err)
		}

		decrypter, err := age.Decrypt(encryptedFile, ageIdentity)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt private key: %w", err)
		}

		decryptedData, err := io.ReadAll(decrypter)
		if err != nil {
			return "", fmt.Errorf("failed to read decrypted key: %w", err)
		}

		security.ZeroString(&passphrase)
		return string(decryptedData), nil
	}

	if _, err := os.Stat(unencryptedKeyPath); err != nil {
		return "", fmt.Errorf("no unencrypted private key found for node %d", nodeID)
	}

	privateKeyData, err := os.ReadFile(unencryptedKeyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read private key file: %w", err)
	}
	return string(privateKeyData), nil
}
