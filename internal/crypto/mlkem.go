package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// MLKEMSeal seals with an ML-KEM-768 encapsulation followed by AES-256-GCM
// under a key derived with HKDF-SHA-512.
//
// Sealed layout: ct_kem (1088 bytes) || nonce (12) || ciphertext || tag (16).
// The KEM ciphertext is bound as additional data.
type MLKEMSeal struct{}

// Encrypt implements Encrypter. The key is imported on every call.
func (MLKEMSeal) Encrypt(plaintext, publicKey string) (string, error) {
	raw, err := decodeKeyMaterial(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	if len(raw) != MLKEMPublicKeySize {
		return "", fmt.Errorf("%w: %w: got %d, want %d",
			ErrEncryptionFailed, ErrInvalidPublicKeySize, len(raw), MLKEMPublicKeySize)
	}

	var pub mlkem768.PublicKey
	if err := pub.Unpack(raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	seed := make([]byte, mlkem768.EncapsulationSeedSize)
	if _, err := io.ReadFull(random(), seed); err != nil {
		return "", fmt.Errorf("%w: read seed: %w", ErrEncryptionFailed, err)
	}

	ctKem := make([]byte, MLKEMCiphertextSize)
	shared := make([]byte, MLKEMSharedKeySize)
	pub.EncapsulateTo(ctKem, shared, seed)

	key, err := sealKey(shared, ctKem)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(random(), nonce); err != nil {
		return "", fmt.Errorf("%w: read nonce: %w", ErrEncryptionFailed, err)
	}

	body, err := EncryptAES(key, []byte(plaintext), nonce, ctKem)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	return ToBase64(append(ctKem, body...)), nil
}

// Scheme returns the algorithm suite name.
func (MLKEMSeal) Scheme() string { return SchemeMLKEM }

// OpenMLKEM reverses MLKEMSeal.Encrypt with the server's keypair.
func OpenMLKEM(sealed string, keypair *Keypair) (string, error) {
	data, err := DecodeBase64(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	if len(data) < MLKEMCiphertextSize+AESNonceSize+AESTagSize {
		return "", ErrInvalidCiphertextSize
	}

	ctKem := data[:MLKEMCiphertextSize]
	shared, err := keypair.Decapsulate(ctKem)
	if err != nil {
		return "", err
	}

	key, err := sealKey(shared, ctKem)
	if err != nil {
		return "", err
	}

	plaintext, err := DecryptAES(key, data[MLKEMCiphertextSize:], ctKem)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
