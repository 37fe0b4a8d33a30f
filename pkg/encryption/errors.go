package encryption

import "errors"

var (
	// ErrKeyFormat reports imported key text that does not match the expected
	// binary structure for its role.
	ErrKeyFormat = errors.New("key does not match expected format")

	// ErrPayloadTooLarge reports a plaintext above the RSA-OAEP bound. It is
	// raised before the primitive runs, never surfaced as a lower-level failure.
	ErrPayloadTooLarge = errors.New("plaintext exceeds asymmetric payload limit")

	// ErrDecryption is the single failure kind for every decrypt path. It
	// deliberately carries no detail about the cause (wrong key, corrupted
	// ciphertext, bad padding) to avoid oracle-style side channels.
	ErrDecryption = errors.New("decryption failed")
)
