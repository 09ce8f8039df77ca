package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
)

// RSAOAEP seals with RSA-OAEP using SHA-256 for both the hash and MGF1.
// The public key is a base64 (or PEM) encoded PKIX SubjectPublicKeyInfo.
type RSAOAEP struct{}

// Encrypt implements Encrypter. The key is imported on every call.
func (RSAOAEP) Encrypt(plaintext, publicKey string) (string, error) {
	pub, err := ParseRSAPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	sealed, err := rsa.EncryptOAEP(sha256.New(), random(), pub, []byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	return ToBase64(sealed), nil
}

// Scheme returns the algorithm name.
func (RSAOAEP) Scheme() string { return SchemeRSAOAEP }

// ParseRSAPublicKey imports a base64 or PEM encoded PKIX RSA public key.
func ParseRSAPublicKey(publicKey string) (*rsa.PublicKey, error) {
	der, err := decodeKeyMaterial(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want RSA", ErrInvalidPublicKey, pub)
	}
	return rsaPub, nil
}
