package crypto

import "errors"

var (
	// ErrEncryptionFailed is returned by every Encrypter when sealing fails.
	// The underlying cause is wrapped.
	ErrEncryptionFailed = errors.New("data encryption failed")

	// ErrInvalidPublicKey is returned when the published key cannot be decoded
	// or is not of the expected type.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrUnsupportedKey is returned by Auto when the key matches no known scheme.
	ErrUnsupportedKey = errors.New("unsupported public key format")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidCiphertextSize is returned when the ciphertext size is invalid.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrDecryptionFailed is returned when opening a sealed value fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)
