package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("wrongpass99", hash))
	assert.False(t, Verify("password123", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)
	second, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	// Deterministic, so tokens can be looked up by hash
	assert.Equal(t, HashToken("some-token"), HashToken("some-token"))
	assert.NotEqual(t, HashToken("some-token"), HashToken("other-token"))
	assert.Len(t, HashToken("some-token"), 64)
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.False(t, Validate("1234567"))
	assert.False(t, Validate(""))
}
