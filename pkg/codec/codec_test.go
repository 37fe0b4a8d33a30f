package codec

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("hello"),
		{0x00},
		{0xff, 0x00, 0xfe, 0x01},
	}

	for _, input := range inputs {
		decoded, err := Decode(Encode(input))
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestRoundTripRandom(t *testing.T) {
	for size := 0; size < 257; size += 16 {
		buf := make([]byte, size)
		_, err := rand.Read(buf)
		require.NoError(t, err)

		decoded, err := Decode(Encode(buf))
		require.NoError(t, err)
		assert.Equal(t, buf, decoded)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, text := range []string{"not base64!!", "a", "%%%%"} {
		_, err := Decode(text)
		assert.ErrorIs(t, err, ErrDecoding, "input %q", text)
	}
}

func TestEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))

	decoded, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
