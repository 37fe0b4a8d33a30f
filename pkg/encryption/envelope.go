package encryption

import (
	"crypto/rsa"
	"fmt"

	"github.com/Morgane2t/decent-workshop-4/pkg/security"
)

// Envelope carries a bulk payload protected with a one-off symmetric key,
// alongside that key protected with the recipient's public key. Both parts are
// codec text and travel together.
type Envelope struct {
	// Key is the RSA-OAEP encryption of the exported one-off symmetric key.
	Key string `json:"key"`
	// Payload is the AES-CBC encryption of the plaintext under that key.
	Payload string `json:"payload"`
}

// SealEnvelope protects a plaintext of any length for the holder of the given
// public key: a fresh symmetric key encrypts the payload, the recipient's
// public key encrypts that symmetric key. The one-off key is zeroed before
// returning.
func SealEnvelope(plaintext, recipientPubKeyText string) (*Envelope, error) {
	symKey, err := GenerateSymmetricKey()
	if err != nil {
		return nil, err
	}
	defer security.ZeroBytes(symKey)

	payload, err := EncryptAESCBCWithIVEmbed(symKey, plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal payload: %w", err)
	}

	encryptedKey, err := EncryptRSA(ExportSymmetricKey(symKey), recipientPubKeyText)
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}

	return &Envelope{Key: encryptedKey, Payload: payload}, nil
}

// OpenEnvelope reverses SealEnvelope with the recipient's private key.
func OpenEnvelope(env *Envelope, priv *rsa.PrivateKey) (string, error) {
	keyText, err := DecryptRSA(env.Key, priv)
	if err != nil {
		return "", err
	}
	defer security.ZeroString(&keyText)

	plaintext, err := DecryptAESCBCWithIVEmbed(keyText, env.Payload)
	if err != nil {
		return "", err
	}
	return plaintext, nil
}
