package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt")

	key1 := DeriveKey([]byte("secret-password"), []byte("pepper"), salt)
	key2 := DeriveKey([]byte("secret-password"), []byte("pepper"), salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != argonKeyLen {
		t.Errorf("expected %d byte key, got %d", argonKeyLen, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	base := DeriveKey([]byte("secret-password"), []byte("pepper"), []byte("salt-1"))

	assert.NotEqual(t, base, DeriveKey([]byte("secret-password"), []byte("pepper"), []byte("salt-2")))
	assert.NotEqual(t, base, DeriveKey([]byte("secret-password"), []byte("other"), []byte("salt-1")))
	assert.NotEqual(t, base, DeriveKey([]byte("secret-passwore"), []byte("pepper"), []byte("salt-1")))
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	h := HashPassword("namaste", "pepper")

	ok, err := VerifyPassword(h, "namaste", "pepper")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(h, "namaste!", "pepper")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword(h, "namaste", "another-pepper")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	assert.NotEqual(t, HashPassword("same", "p"), HashPassword("same", "p"))
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, h := range []string{"", "sha256$abc", "argon2id$!!$abc", "argon2id$YWJj$!!"} {
		_, err := VerifyPassword(h, "x", "p")
		assert.ErrorIs(t, err, ErrMalformedHash, h)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)

	sealed, err := Seal([]byte(`{"a":1}`), key)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), `"a"`)

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(plain))
}

func TestOpen_Errors(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)

	_, err := Open([]byte{1, 2}, key)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := Seal([]byte("payload"), key)
	require.NoError(t, err)
	_, err = Open(sealed, bytes.Repeat([]byte{8}, 32))
	assert.Error(t, err, "wrong key must fail authentication")

	_, err = Seal([]byte("x"), []byte("short"))
	assert.Error(t, err)
}
