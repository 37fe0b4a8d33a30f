package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morgane2t/decent-workshop-4/pkg/codec"
)

func mustKeyPair(t *testing.T) *KeyPair {
	t.Helper()
	pair, err := GenerateKeyPair()
	require.NoError(t, err)
	return pair
}

func TestGenerateKeyPair(t *testing.T) {
	pair := mustKeyPair(t)

	assert.Equal(t, rsaKeyBits, pair.PublicKey.N.BitLen())
	assert.Equal(t, 65537, pair.PublicKey.E)
	assert.Equal(t, pair.PublicKey, &pair.PrivateKey.PublicKey)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	for _, plaintext := range []string{
		"",
		"short secret",
		strings.Repeat("x", MaxRSAPayload),
	} {
		ciphertext, err := EncryptRSA(plaintext, pubText)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := DecryptRSA(ciphertext, pair.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptPayloadTooLarge(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	_, err = EncryptRSA(strings.Repeat("x", MaxRSAPayload+1), pubText)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestPublicKeyExportImportRoundTrip(t *testing.T) {
	pair := mustKeyPair(t)

	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	imported, err := ImportPublicKey(pubText)
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, imported)

	// The re-imported key must be usable for encryption against the original
	// private key.
	ciphertext, err := EncryptRSA("probe", pubText)
	require.NoError(t, err)
	decrypted, err := DecryptRSA(ciphertext, pair.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, "probe", decrypted)
}

func TestPrivateKeyExportImportRoundTrip(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	privText, err := ExportPrivateKey(pair.PrivateKey)
	require.NoError(t, err)

	imported, err := ImportPrivateKey(privText)
	require.NoError(t, err)

	ciphertext, err := EncryptRSA("probe", pubText)
	require.NoError(t, err)
	decrypted, err := DecryptRSA(ciphertext, imported)
	require.NoError(t, err)
	assert.Equal(t, "probe", decrypted)
}

func TestExportPrivateKeyNil(t *testing.T) {
	text, err := ExportPrivateKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestImportKeyFormatErrors(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)
	privText, err := ExportPrivateKey(pair.PrivateKey)
	require.NoError(t, err)

	_, err = ImportPublicKey("not a key")
	assert.ErrorIs(t, err, ErrKeyFormat)

	_, err = ImportPublicKey(codec.Encode([]byte("garbage DER")))
	assert.ErrorIs(t, err, ErrKeyFormat)

	// Role mismatch: a private key is not a valid SubjectPublicKeyInfo and a
	// public key is not a valid PKCS#8 structure.
	_, err = ImportPublicKey(privText)
	assert.ErrorIs(t, err, ErrKeyFormat)

	_, err = ImportPrivateKey(pubText)
	assert.ErrorIs(t, err, ErrKeyFormat)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	ciphertext, err := EncryptRSA("payload under test", pubText)
	require.NoError(t, err)

	raw, err := codec.Decode(ciphertext)
	require.NoError(t, err)

	for _, idx := range []int{0, len(raw) / 2, len(raw) - 1} {
		tampered := append([]byte(nil), raw...)
		tampered[idx] ^= 0x01

		_, err := DecryptRSA(codec.Encode(tampered), pair.PrivateKey)
		assert.ErrorIs(t, err, ErrDecryption, "flipped byte %d", idx)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	sender := mustKeyPair(t)
	other := mustKeyPair(t)

	pubText, err := ExportPublicKey(sender.PublicKey)
	require.NoError(t, err)

	ciphertext, err := EncryptRSA("secret", pubText)
	require.NoError(t, err)

	_, err = DecryptRSA(ciphertext, other.PrivateKey)
	assert.ErrorIs(t, err, ErrDecryption)
}
