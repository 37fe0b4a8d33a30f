// Package codec is the transport-safe text encoding every wire string in this
// project goes through: exported keys, ciphertexts, and envelope parts. It has
// no cryptographic meaning of its own.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrDecoding reports text that is not a well-formed encoding of any byte
// sequence.
var ErrDecoding = errors.New("malformed encoded text")

// Encode converts raw bytes to their text form. Total for every input,
// including empty.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode is the inverse of Encode.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return data, nil
}
