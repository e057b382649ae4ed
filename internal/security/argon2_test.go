package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Argon2Params {
	return Argon2Params{Time: 1, MemKiB: 8 * 1024, Par: 1, SaltLen: 16, KeyLen: 32}
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h, err := NewArgon2Hasher(testParams())
	require.NoError(t, err)

	encoded, err := h.Hash("secret1")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 5)
	assert.Equal(t, "argon2id", parts[0])
	assert.Equal(t, "v=19", parts[1])
	assert.Equal(t, "m=8192,t=1,p=1", parts[2])
	assert.NotContains(t, encoded, "secret1")

	ok, err := h.Verify("secret1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("secret2", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltsDiffer(t *testing.T) {
	h, err := NewArgon2Hasher(testParams())
	require.NoError(t, err)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	weak, err := NewArgon2Hasher(testParams())
	require.NoError(t, err)
	encoded, err := weak.Hash("secret1")
	require.NoError(t, err)

	strong := testParams()
	strong.Time = 2
	h, err := NewArgon2Hasher(strong)
	require.NoError(t, err)

	ok, err := h.Verify("secret1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_VerifyMalformed(t *testing.T) {
	h, err := NewArgon2Hasher(testParams())
	require.NoError(t, err)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "legacy sha256 hex", encoded: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{name: "wrong variant", encoded: "argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"},
		{name: "wrong version", encoded: "argon2id$v=16$m=8192,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"},
		{name: "bad params", encoded: "argon2id$v=19$m=8192,t=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"},
		{name: "bad salt", encoded: "argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaGhhc2hoYXNoaGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("secret1", tt.encoded)
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNewArgon2Hasher_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Argon2Params)
	}{
		{name: "low memory", mutate: func(p *Argon2Params) { p.MemKiB = 1024 }},
		{name: "zero time", mutate: func(p *Argon2Params) { p.Time = 0 }},
		{name: "zero parallelism", mutate: func(p *Argon2Params) { p.Par = 0 }},
		{name: "short salt", mutate: func(p *Argon2Params) { p.SaltLen = 4 }},
		{name: "short key", mutate: func(p *Argon2Params) { p.KeyLen = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			h, err := NewArgon2Hasher(p)
			assert.Nil(t, h)
			assert.ErrorIs(t, err, errInvalidParams)
		})
	}
}
