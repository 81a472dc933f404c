package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_Hash(t *testing.T) {
	hasher := NewArgon2Hasher()

	password := "s3cret"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	// The encoded string carries algorithm, parameters, salt and digest.
	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "m=65536,t=1,p=4", parts[3])

	// Verify the hash can be checked.
	assert.True(t, hasher.Check(password, hash))
}

func TestArgon2Hasher_HashIsSaltedPerCall(t *testing.T) {
	hasher := NewArgon2Hasher()

	password := "same-password"
	first, err := hasher.Hash(password)
	require.NoError(t, err)
	second, err := hasher.Hash(password)
	require.NoError(t, err)

	// Fresh salt per call: equal passwords must not produce equal hashes.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestArgon2Hasher_Check(t *testing.T) {
	hasher := NewArgon2Hasher()

	password := "s3cret"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("other", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestArgon2Hasher_CheckRejectsMalformedHashes(t *testing.T) {
	hasher := NewArgon2Hasher()

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)

	malformed := []string{
		"",
		"$argon2id$v=19$m=65536,t=1,p=4",                   // missing salt and digest
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",    // wrong variant
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",   // wrong version
		"$argon2id$v=19$m=banana,t=1,p=4$c2FsdA$ZGlnZXN0",  // unparseable params
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0",      // invalid salt encoding
		"$argon2id$v=19$m=65536,t=1,p=4$" + parts[4] + "$", // empty digest
	}

	for _, bad := range malformed {
		assert.False(t, hasher.Check("s3cret", bad), "expected Check to reject %q", bad)
	}
}

func TestArgon2Hasher_CheckHonoursEmbeddedParameters(t *testing.T) {
	// A hash created with lighter parameters still verifies: costs are read
	// from the encoded string, not from the hasher's current defaults.
	light := &argon2Hasher{time: 1, memory: 8 * 1024, threads: 1, keyLen: 16, saltLen: 16}
	hash, err := light.Hash("s3cret")
	require.NoError(t, err)

	current := NewArgon2Hasher()
	assert.True(t, current.Check("s3cret", hash))
	assert.False(t, current.Check("wrong", hash))
}

func TestArgon2Hasher_TamperedDigestFails(t *testing.T) {
	hasher := NewArgon2Hasher()

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)

	digest := []byte(parts[5])
	if digest[0] == 'A' {
		digest[0] = 'B'
	} else {
		digest[0] = 'A'
	}
	parts[5] = string(digest)

	assert.False(t, hasher.Check("s3cret", strings.Join(parts, "$")))
}
