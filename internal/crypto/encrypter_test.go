package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	_, rsaPub := newRSAKey(t)
	kp, err := GenerateKeypair()
	require.NoError(t, err)

	enc, err := Detect(rsaPub)
	require.NoError(t, err)
	assert.IsType(t, RSAOAEP{}, enc)

	enc, err = Detect(kp.PublicKeyBase64())
	require.NoError(t, err)
	assert.IsType(t, MLKEMSeal{}, enc)

	_, err = Detect(ToBase64([]byte("short")))
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestAuto_Encrypt(t *testing.T) {
	priv, rsaPub := newRSAKey(t)

	sealed, err := Auto{}.Encrypt("k", rsaPub)
	require.NoError(t, err)
	raw, err := FromBase64(sealed)
	require.NoError(t, err)
	plain, err := rsa.DecryptOAEP(sha256.New(), nil, priv, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "k", string(plain))

	kp, err := GenerateKeypair()
	require.NoError(t, err)
	sealed, err = Auto{}.Encrypt("k", kp.PublicKeyBase64())
	require.NoError(t, err)
	opened, err := OpenMLKEM(sealed, kp)
	require.NoError(t, err)
	assert.Equal(t, "k", opened)

	_, err = Auto{}.Encrypt("k", "garbage")
	assert.ErrorIs(t, err, ErrEncryptionFailed)
}

func TestDecodeBase64_Variants(t *testing.T) {
	want := []byte{0xfb, 0xff, 0xbf}
	for _, s := range []string{"+/+/", "-_-_"} {
		got, err := DecodeBase64(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	got, err := DecodeBase64("aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSealKey_BoundToCiphertext(t *testing.T) {
	shared := []byte("shared-secret")
	a, err := sealKey(shared, []byte("ct-1"))
	require.NoError(t, err)
	b, err := sealKey(shared, []byte("ct-1"))
	require.NoError(t, err)
	c, err := sealKey(shared, []byte("ct-2"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, AESKeySize)
}
