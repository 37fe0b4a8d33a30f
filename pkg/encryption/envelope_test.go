package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morgane2t/decent-workshop-4/pkg/codec"
)

func TestSealOpenRoundTrip(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	for _, plaintext := range []string{
		"short",
		strings.Repeat("bulk data well beyond the asymmetric transport bound ", 64),
	} {
		env, err := SealEnvelope(plaintext, pubText)
		require.NoError(t, err)

		opened, err := OpenEnvelope(env, pair.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestSealProducesFreshKeys(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	first, err := SealEnvelope("same plaintext", pubText)
	require.NoError(t, err)
	second, err := SealEnvelope("same plaintext", pubText)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.NotEqual(t, first.Payload, second.Payload)
}

func TestOpenTamperedKeyPart(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	env, err := SealEnvelope("payload", pubText)
	require.NoError(t, err)

	raw, err := codec.Decode(env.Key)
	require.NoError(t, err)
	raw[0] ^= 0x01
	env.Key = codec.Encode(raw)

	_, err = OpenEnvelope(env, pair.PrivateKey)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestOpenTamperedPayloadPart(t *testing.T) {
	pair := mustKeyPair(t)
	pubText, err := ExportPublicKey(pair.PublicKey)
	require.NoError(t, err)

	env, err := SealEnvelope("payload", pubText)
	require.NoError(t, err)

	// Truncating the payload below one IV plus one block fails the symmetric
	// decrypt after the key part has already been recovered.
	env.Payload = codec.Encode(make([]byte, ivSize))

	_, err = OpenEnvelope(env, pair.PrivateKey)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestOpenWrongRecipient(t *testing.T) {
	recipient := mustKeyPair(t)
	other := mustKeyPair(t)

	pubText, err := ExportPublicKey(recipient.PublicKey)
	require.NoError(t, err)

	env, err := SealEnvelope("payload", pubText)
	require.NoError(t, err)

	_, err = OpenEnvelope(env, other.PrivateKey)
	assert.ErrorIs(t, err, ErrDecryption)
}
