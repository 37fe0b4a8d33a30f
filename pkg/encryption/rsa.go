// Package encryption provides the two confidentiality transports nodes use to
// exchange payloads: a bounded-size RSA-OAEP transport for short secrets and an
// unbounded AES-CBC transport for bulk data, plus the envelope that composes
// them. All wire values are text strings produced through pkg/codec.
package encryption

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/Morgane2t/decent-workshop-4/pkg/codec"
)

const (
	rsaKeyBits = 2048

	// MaxRSAPayload is the OAEP plaintext bound: keyBytes - 2*hashLen - 2.
	// 190 bytes for a 2048-bit key with SHA-256. Anything larger must go
	// through the symmetric transport.
	MaxRSAPayload = rsaKeyBits/8 - 2*sha256.Size - 2
)

// KeyPair holds a node's asymmetric key pair. The private half never leaves
// the process in raw form, only as exported text.
type KeyPair struct {
	PublicKey  *rsa.PublicKey
	PrivateKey *rsa.PrivateKey
}

// GenerateKeyPair produces a fresh RSA-2048 key pair. Safe to call
// concurrently; every call is independent.
func GenerateKeyPair() (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate RSA key pair: %w", err)
	}
	return &KeyPair{
		PublicKey:  &privateKey.PublicKey,
		PrivateKey: privateKey,
	}, nil
}

// ExportPublicKey serializes a public key to codec text over its
// SubjectPublicKeyInfo form.
func ExportPublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return codec.Encode(der), nil
}

// ExportPrivateKey serializes a private key to codec text over its PKCS#8
// form. A nil key exports as the empty string so callers holding only a public
// key keep a uniform export path.
func ExportPrivateKey(priv *rsa.PrivateKey) (string, error) {
	if priv == nil {
		return "", nil
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", fmt.Errorf("marshal private key: %w", err)
	}
	return codec.Encode(der), nil
}

// ImportPublicKey parses exported public key text. The result is
// encrypt-capable only.
func ImportPublicKey(text string) (*rsa.PublicKey, error) {
	der, err := codec.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", ErrKeyFormat)
	}
	return pub, nil
}

// ImportPrivateKey parses exported private key text. The result is
// decrypt-capable only.
func ImportPrivateKey(text string) (*rsa.PrivateKey, error) {
	der, err := codec.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}

	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA private key", ErrKeyFormat)
	}
	return priv, nil
}

// EncryptRSA encrypts a short plaintext to the recipient's exported public key
// text using RSA-OAEP with SHA-256. Plaintexts above MaxRSAPayload are
// rejected with ErrPayloadTooLarge before the primitive runs.
func EncryptRSA(plaintext, recipientPubKeyText string) (string, error) {
	pub, err := ImportPublicKey(recipientPubKeyText)
	if err != nil {
		return "", err
	}

	if len(plaintext) > MaxRSAPayload {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(plaintext), MaxRSAPayload)
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("RSA-OAEP encrypt: %w", err)
	}
	return codec.Encode(ciphertext), nil
}

// DecryptRSA reverses EncryptRSA with the matching private key. Every failure
// mode collapses into ErrDecryption.
func DecryptRSA(ciphertextText string, priv *rsa.PrivateKey) (string, error) {
	ciphertext, err := codec.Decode(ciphertextText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return "", ErrDecryption
	}
	return string(plaintext), nil
}
