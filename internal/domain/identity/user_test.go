package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		u, err := NewUser("  jperez ", "JPerez@Example.com", "s3cret-pass", false)
		require.NoError(t, err)
		require.NotNil(t, u)

		assert.Equal(t, "jperez", u.Username)
		assert.Equal(t, "jperez@example.com", u.Email)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsAdmin)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("  ", "a@b.com", "s3cret-pass", false)
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("jperez", "not-an-email", "s3cret-pass", false)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("jperez", "a@b.com", "short", false)
		assert.Error(t, err)
	})
}

func TestUserVerifyPassword(t *testing.T) {
	u, err := NewUser("jperez", "a@b.com", "s3cret-pass", false)
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("s3cret-pass"))
	assert.False(t, u.VerifyPassword("wrong-pass"))
}

func TestUserChangePassword(t *testing.T) {
	u, err := NewUser("jperez", "a@b.com", "s3cret-pass", false)
	require.NoError(t, err)

	t.Run("replaces the stored hash", func(t *testing.T) {
		require.NoError(t, u.ChangePassword("another-pass"))

		assert.False(t, u.VerifyPassword("s3cret-pass"))
		assert.True(t, u.VerifyPassword("another-pass"))
	})

	t.Run("rejects short replacement", func(t *testing.T) {
		err := u.ChangePassword("short")
		assert.Error(t, err)
		assert.True(t, u.VerifyPassword("another-pass"))
	})
}

func TestUserToggleActive(t *testing.T) {
	u, err := NewUser("jperez", "a@b.com", "s3cret-pass", false)
	require.NoError(t, err)

	assert.False(t, u.ToggleActive())
	assert.False(t, u.CanLogin())

	assert.True(t, u.ToggleActive())
	assert.True(t, u.CanLogin())
}
