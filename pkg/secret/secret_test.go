package secret

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T) string {
	t.Helper()
	k, err := GenerateKey()
	require.NoError(t, err)
	return k
}

func TestEncryptDecrypt(t *testing.T) {
	e, err := NewEncryptor(mustKey(t))
	require.NoError(t, err)

	ct, err := e.Encrypt("amFuZTpodW50ZXIy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "1:"+CipherVersion+":"))
	assert.True(t, IsEncrypted(ct))

	pt, err := e.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "amFuZTpodW50ZXIy", pt)
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	e, err := NewEncryptor(mustKey(t))
	require.NoError(t, err)

	a, err := e.Encrypt("same")
	require.NoError(t, err)
	b, err := e.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestKeyRotation(t *testing.T) {
	oldKey, newKey := mustKey(t), mustKey(t)

	before, err := NewEncryptor(oldKey)
	require.NoError(t, err)
	ct, err := before.Encrypt("token")
	require.NoError(t, err)

	after, err := NewEncryptor(oldKey + "\n" + newKey)
	require.NoError(t, err)
	assert.Equal(t, 2, after.KeyVersion())

	pt, err := after.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "token", pt)

	fresh, err := after.Encrypt("token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fresh, "2:"))

	_, err = before.Decrypt(fresh)
	assert.ErrorIs(t, err, ErrUnknownKeyVersion)
}

func TestDecryptRejectsTampering(t *testing.T) {
	e, err := NewEncryptor(mustKey(t))
	require.NoError(t, err)
	ct, err := e.Encrypt("token")
	require.NoError(t, err)

	parts := strings.SplitN(ct, ":", 3)
	raw, err := base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := parts[0] + ":" + parts[1] + ":" + base64.StdEncoding.EncodeToString(raw)

	_, err = e.Decrypt(tampered)
	assert.Error(t, err)

	_, err = e.Decrypt("not-a-ciphertext")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)
}

func TestValidateKey(t *testing.T) {
	distinct := make([]byte, 32)
	for i := range distinct {
		distinct[i] = byte(i * 7)
	}

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid", key: base64.StdEncoding.EncodeToString(distinct)},
		{name: "empty", key: "", wantErr: true},
		{name: "whitespace", key: "abc def", wantErr: true},
		{name: "not base64", key: "!!!!", wantErr: true},
		{name: "short", key: base64.StdEncoding.EncodeToString(distinct[:16]), wantErr: true},
		{name: "all zero", key: base64.StdEncoding.EncodeToString(make([]byte, 32)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewEncryptorRequiresKeys(t *testing.T) {
	_, err := NewEncryptor("   ")
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = NewEncryptor(mustKey(t) + " short")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
