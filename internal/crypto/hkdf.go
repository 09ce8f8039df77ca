package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// sealKey derives the AES key of one ML-KEM seal. The KEM ciphertext is the
// salt, so a shared secret never yields the same key for two seals.
func sealKey(shared, ctKem []byte) ([]byte, error) {
	salt := sha512.Sum512(ctKem)

	key := make([]byte, AESKeySize)
	r := hkdf.New(sha512.New, shared, salt[:], []byte(HKDFContext))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive seal key: %w", err)
	}
	return key, nil
}
