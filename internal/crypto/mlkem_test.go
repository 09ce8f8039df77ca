package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMLKEMSeal_RoundTrip(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	sealed, err := MLKEMSeal{}.Encrypt("admin-secret", kp.PublicKeyBase64())
	require.NoError(t, err)

	raw, err := FromBase64(sealed)
	require.NoError(t, err)
	assert.Len(t, raw, MLKEMCiphertextSize+AESNonceSize+len("admin-secret")+AESTagSize)

	plain, err := OpenMLKEM(sealed, kp)
	require.NoError(t, err)
	assert.Equal(t, "admin-secret", plain)
}

func TestMLKEMSeal_WrongKeypair(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)
	other, err := GenerateKeypair()
	require.NoError(t, err)

	sealed, err := MLKEMSeal{}.Encrypt("secret", kp.PublicKeyBase64())
	require.NoError(t, err)

	_, err = OpenMLKEM(sealed, other)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestMLKEMSeal_TamperedCiphertext(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	sealed, err := MLKEMSeal{}.Encrypt("secret", kp.PublicKeyBase64())
	require.NoError(t, err)

	raw, err := FromBase64(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = OpenMLKEM(ToBase64(raw), kp)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestMLKEMSeal_InvalidKeySize(t *testing.T) {
	_, err := MLKEMSeal{}.Encrypt("x", ToBase64(make([]byte, 100)))
	assert.ErrorIs(t, err, ErrEncryptionFailed)
	assert.ErrorIs(t, err, ErrInvalidPublicKeySize)
}

func TestOpenMLKEM_ShortInput(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	_, err = OpenMLKEM(ToBase64(make([]byte, 10)), kp)
	assert.ErrorIs(t, err, ErrInvalidCiphertextSize)
}

func TestKeypair_DecapsulateWrongSize(t *testing.T) {
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	_, err = kp.Decapsulate(make([]byte, 5))
	assert.ErrorIs(t, err, ErrInvalidCiphertextSize)
}
