package crypto

const (
	// HKDFContext is the info string used in HKDF key derivation
	// for domain separation.
	HKDFContext = "soulnest:admin-key:v1"

	// MLKEMPublicKeySize is the size of an ML-KEM-768 public key in bytes.
	MLKEMPublicKeySize = 1184
	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088
	// MLKEMSharedKeySize is the size of the shared secret from ML-KEM-768 in bytes.
	MLKEMSharedKeySize = 32

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16
)

// Scheme names reported by RSAOAEP.Scheme and MLKEMSeal.Scheme.
const (
	SchemeRSAOAEP = "RSA-OAEP-256"
	SchemeMLKEM   = "ML-KEM-768:HKDF-SHA-512:AES-256-GCM"
)
