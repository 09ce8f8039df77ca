package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// Encrypter seals a UTF-8 plaintext against a published public key and
// returns the sealed value as base64.
type Encrypter interface {
	Encrypt(plaintext, publicKey string) (string, error)
}

var (
	_ Encrypter = RSAOAEP{}
	_ Encrypter = MLKEMSeal{}
	_ Encrypter = Auto{}
)

// Auto picks RSA-OAEP for PKIX RSA keys and the ML-KEM seal for raw
// ML-KEM-768 encapsulation keys.
type Auto struct{}

// Encrypt implements Encrypter.
func (Auto) Encrypt(plaintext, publicKey string) (string, error) {
	enc, err := Detect(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	return enc.Encrypt(plaintext, publicKey)
}

// Detect returns the Encrypter matching the format of publicKey.
func Detect(publicKey string) (Encrypter, error) {
	raw, err := decodeKeyMaterial(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if pub, err := x509.ParsePKIXPublicKey(raw); err == nil {
		if _, ok := pub.(*rsa.PublicKey); ok {
			return RSAOAEP{}, nil
		}
	}
	if len(raw) == MLKEMPublicKeySize {
		return MLKEMSeal{}, nil
	}
	return nil, ErrUnsupportedKey
}
