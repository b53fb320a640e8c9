package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.Error(t, CheckPassword(hash, "wrong-pass"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("64f1a2b3c4d5e6f708192a3b", "a@x.com", "interviewer", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "64f1a2b3c4d5e6f708192a3b", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "interviewer", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("id", "a@x.com", "admin", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken("id", "a@x.com", "admin", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestGenerateResetToken(t *testing.T) {
	plain, hash, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 40) // 20 random bytes, hex encoded
	assert.Len(t, hash, 64)  // sha256 hex
	assert.Equal(t, hash, HashResetToken(plain))

	plain2, hash2, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
	assert.NotEqual(t, hash, hash2)
}

func TestRandomMeetingPassword(t *testing.T) {
	p1 := RandomMeetingPassword()
	p2 := RandomMeetingPassword()

	assert.Len(t, p1, 8)
	assert.NotEqual(t, p1, p2)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "jose-garcia", GenerateSlug("José García"))
	assert.Equal(t, "jane-doe", GenerateSlug("  Jane   Doe!! "))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 10, ParseIntDefault("", 10))
	assert.Equal(t, 10, ParseIntDefault("abc", 10))
	assert.Equal(t, 42, ParseIntDefault("42", 10))
}

func TestStringsToObjectIDs(t *testing.T) {
	ids, err := StringsToObjectIDs([]string{"64f1a2b3c4d5e6f708192a3b"})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	_, err = StringsToObjectIDs([]string{"not-an-id"})
	assert.Error(t, err)
}
