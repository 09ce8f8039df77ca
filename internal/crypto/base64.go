package crypto

import (
	"encoding/base64"
	"encoding/pem"
	"strings"
)

// ToBase64 encodes bytes to standard base64 with padding.
// Sealed values are always emitted in this form.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard base64 (with padding) to bytes.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// DecodeBase64 decodes base64 in any of the four RFC 4648 variants.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.RawURLEncoding.DecodeString(s)
}

// decodeKeyMaterial accepts a PEM block or bare base64 and returns the DER
// (or raw) key bytes.
func decodeKeyMaterial(key string) ([]byte, error) {
	trimmed := strings.TrimSpace(key)
	if strings.HasPrefix(trimmed, "-----BEGIN") {
		block, _ := pem.Decode([]byte(trimmed))
		if block == nil {
			return nil, ErrInvalidPublicKey
		}
		return block.Bytes, nil
	}
	return DecodeBase64(strings.Join(strings.Fields(trimmed), ""))
}
