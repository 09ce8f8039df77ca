package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRSAKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	return priv, ToBase64(der)
}

func TestRSAOAEP_EncryptRoundTrip(t *testing.T) {
	priv, pub := newRSAKey(t)

	sealed, err := RSAOAEP{}.Encrypt("admin-secret", pub)
	require.NoError(t, err)

	raw, err := FromBase64(sealed)
	require.NoError(t, err)
	assert.Len(t, raw, 256)

	plain, err := rsa.DecryptOAEP(sha256.New(), nil, priv, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin-secret", string(plain))
}

func TestRSAOAEP_IsRandomized(t *testing.T) {
	_, pub := newRSAKey(t)

	a, err := RSAOAEP{}.Encrypt("same", pub)
	require.NoError(t, err)
	b, err := RSAOAEP{}.Encrypt("same", pub)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRSAOAEP_AcceptsPEM(t *testing.T) {
	priv, _ := newRSAKey(t)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	sealed, err := RSAOAEP{}.Encrypt("x", pemKey)
	require.NoError(t, err)

	raw, err := FromBase64(sealed)
	require.NoError(t, err)
	plain, err := rsa.DecryptOAEP(sha256.New(), nil, priv, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", string(plain))
}

func TestRSAOAEP_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not a key", ToBase64([]byte("hello world"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RSAOAEP{}.Encrypt("x", tt.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEncryptionFailed)
		})
	}
}

func TestRSAOAEP_PlaintextTooLong(t *testing.T) {
	_, pub := newRSAKey(t)
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	_, err := RSAOAEP{}.Encrypt(string(long), pub)
	assert.ErrorIs(t, err, ErrEncryptionFailed)
}
