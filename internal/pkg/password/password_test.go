package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("rahasia1")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia1", hash)

	assert.True(t, Verify("rahasia1", hash))
	assert.False(t, Verify("salah123", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("rahasia1")
	require.NoError(t, err)
	second, err := Hash("rahasia1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	c := HashToken("another-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("123456"))
	assert.ErrorIs(t, Validate("12345"), ErrTooShort)
	assert.ErrorIs(t, Validate(""), ErrTooShort)
}
