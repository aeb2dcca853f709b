package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, CheckPasswordHash(hash, "Password123!"))
	assert.False(t, CheckPasswordHash(hash, "password123!"))
	assert.False(t, CheckPasswordHash("not-a-hash", "Password123!"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.ErrorIs(t, ValidatePassword("1234567"), ErrPasswordLength)

	_, err := HashPasswordAsBcrypt("short")
	assert.ErrorIs(t, err, ErrPasswordLength)
}
