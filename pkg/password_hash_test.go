package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("gympass")
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.True(t, CheckPasswordHash("gympass", passwordHash))
	assert.False(t, CheckPasswordHash("gympass2", passwordHash))
	assert.False(t, CheckPasswordHash("", passwordHash))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("gympass", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("gympass", ""))
}
