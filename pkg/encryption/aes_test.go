package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morgane2t/decent-workshop-4/pkg/codec"
)

func mustSymmetricKey(t *testing.T) []byte {
	t.Helper()
	key, err := GenerateSymmetricKey()
	require.NoError(t, err)
	return key
}

func TestSymmetricRoundTrip(t *testing.T) {
	key := mustSymmetricKey(t)
	keyText := ExportSymmetricKey(key)

	for _, plaintext := range []string{
		"",
		"a",
		"exactly sixteen!",
		"a plaintext spanning a few CBC blocks, well past the asymmetric bound",
		strings.Repeat("bulk ", 4096),
	} {
		ciphertext, err := EncryptAESCBCWithIVEmbed(key, plaintext)
		require.NoError(t, err)

		decrypted, err := DecryptAESCBCWithIVEmbed(keyText, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestSymmetricIVFreshness(t *testing.T) {
	key := mustSymmetricKey(t)

	first, err := EncryptAESCBCWithIVEmbed(key, "same plaintext")
	require.NoError(t, err)
	second, err := EncryptAESCBCWithIVEmbed(key, "same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstRaw, err := codec.Decode(first)
	require.NoError(t, err)
	secondRaw, err := codec.Decode(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstRaw[:ivSize], secondRaw[:ivSize])
}

func TestSymmetricKeyExportImportRoundTrip(t *testing.T) {
	key := mustSymmetricKey(t)

	imported, err := ImportSymmetricKey(ExportSymmetricKey(key))
	require.NoError(t, err)
	assert.Equal(t, key, imported)
}

func TestImportSymmetricKeyErrors(t *testing.T) {
	_, err := ImportSymmetricKey("not a key")
	assert.ErrorIs(t, err, ErrKeyFormat)

	_, err = ImportSymmetricKey(codec.Encode(make([]byte, 16)))
	assert.ErrorIs(t, err, ErrKeyFormat)
}

func TestSymmetricDecryptMalformed(t *testing.T) {
	key := mustSymmetricKey(t)
	keyText := ExportSymmetricKey(key)

	// Not codec text at all.
	_, err := DecryptAESCBCWithIVEmbed(keyText, "not ciphertext!!")
	assert.ErrorIs(t, err, ErrDecryption)

	// Shorter than one IV plus one block.
	_, err = DecryptAESCBCWithIVEmbed(keyText, codec.Encode(make([]byte, ivSize)))
	assert.ErrorIs(t, err, ErrDecryption)

	// Body not a block multiple.
	_, err = DecryptAESCBCWithIVEmbed(keyText, codec.Encode(make([]byte, ivSize+17)))
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestSymmetricDecryptWrongKey(t *testing.T) {
	key := mustSymmetricKey(t)
	other := mustSymmetricKey(t)

	plaintext := "confidential payload"
	ciphertext, err := EncryptAESCBCWithIVEmbed(key, plaintext)
	require.NoError(t, err)

	// CBC padding rejects the overwhelming majority of wrong-key decrypts;
	// when it happens to pass, the output must still differ from the
	// plaintext. Corrupted output dressed as success is the failure mode this
	// guards against.
	decrypted, err := DecryptAESCBCWithIVEmbed(ExportSymmetricKey(other), ciphertext)
	if err == nil {
		assert.NotEqual(t, plaintext, decrypted)
	} else {
		assert.ErrorIs(t, err, ErrDecryption)
	}
}

func TestSymmetricDecryptTampered(t *testing.T) {
	key := mustSymmetricKey(t)
	keyText := ExportSymmetricKey(key)

	plaintext := "a plaintext spanning a few CBC blocks, well past the asymmetric bound"
	ciphertext, err := EncryptAESCBCWithIVEmbed(key, plaintext)
	require.NoError(t, err)

	raw, err := codec.Decode(ciphertext)
	require.NoError(t, err)

	// Flip one byte in the IV, in the first body block, and in the final
	// padding block. A flip may survive CBC unpadding by chance, but it must
	// never come back as the original plaintext.
	for _, index := range []int{0, ivSize, len(raw) - 1} {
		tampered := append([]byte(nil), raw...)
		tampered[index] ^= 0x01

		decrypted, err := DecryptAESCBCWithIVEmbed(keyText, codec.Encode(tampered))
		if err == nil {
			assert.NotEqual(t, plaintext, decrypted, "flipped byte %d", index)
		} else {
			assert.ErrorIs(t, err, ErrDecryption, "flipped byte %d", index)
		}
	}
}

func TestPKCS7Padding(t *testing.T) {
	// A full padding block is added when the plaintext is already aligned.
	padded := padPKCS7([]byte("exactly sixteen!"), 16)
	assert.Len(t, padded, 32)
	assert.Equal(t, byte(16), padded[31])

	unpadded, err := unpadPKCS7(padded, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte("exactly sixteen!"), unpadded)

	// Corrupt padding bytes are rejected.
	bad := append([]byte(nil), padded...)
	bad[20] = 0x03
	_, err = unpadPKCS7(bad, 16)
	assert.Error(t, err)

	_, err = unpadPKCS7([]byte{0, 0, 0}, 16)
	assert.Error(t, err)
}
