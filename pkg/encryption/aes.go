package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/Morgane2t/decent-workshop-4/pkg/codec"
)

const (
	// SymmetricKeySize is the AES-256 key length in bytes.
	SymmetricKeySize = 32

	ivSize = aes.BlockSize
)

// GenerateSymmetricKey produces a fresh 256-bit key. Generated per logical
// secret, never derived from user input.
func GenerateSymmetricKey() ([]byte, error) {
	key := make([]byte, SymmetricKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate symmetric key: %w", err)
	}
	return key, nil
}

// ExportSymmetricKey serializes a key to codec text over its raw bytes.
func ExportSymmetricKey(key []byte) string {
	return codec.Encode(key)
}

// ImportSymmetricKey parses exported key text and checks the length.
func ImportSymmetricKey(text string) ([]byte, error) {
	key, err := codec.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: expected %d-byte key, got %d", ErrKeyFormat, SymmetricKeySize, len(key))
	}
	return key, nil
}

// EncryptAESCBCWithIVEmbed encrypts a plaintext of any length under AES-256 in
// CBC mode. A fresh 16-byte IV is drawn on every call and transmitted as the
// first 16 bytes of the decoded buffer: output = Encode(IV || ciphertext).
// Reusing an IV under the same key would break confidentiality, so the IV is
// never cached or derived.
func EncryptAESCBCWithIVEmbed(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create AES cipher: %w", err)
	}

	padded := padPKCS7([]byte(plaintext), aes.BlockSize)

	buf := make([]byte, ivSize+len(padded))
	iv := buf[:ivSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[ivSize:], padded)
	return codec.Encode(buf), nil
}

// DecryptAESCBCWithIVEmbed reverses EncryptAESCBCWithIVEmbed given the
// exported key text. Wrong key, corrupted ciphertext, and malformed padding
// all collapse into ErrDecryption.
func DecryptAESCBCWithIVEmbed(keyText, ciphertextText string) (string, error) {
	key, err := ImportSymmetricKey(keyText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	buf, err := codec.Decode(ciphertextText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	if len(buf) < ivSize+aes.BlockSize || (len(buf)-ivSize)%aes.BlockSize != 0 {
		return "", ErrDecryption
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	iv, ciphertext := buf[:ivSize], buf[ivSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return "", ErrDecryption
	}
	return string(unpadded), nil
}

func padPKCS7(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryption
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, ErrDecryption
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrDecryption
		}
	}
	return data[:len(data)-padLen], nil
}
