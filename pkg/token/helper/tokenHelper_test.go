package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/eventforge/eventforge/pkg/model"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	return key
}

func TestAccessToken(t *testing.T) {
	key := newKey(t)
	user := &model.User{
		ID:                1,
		Email:             "org@eventforge.bg",
		Password:          "$argon2id$secret-hash",
		FullName:          "Иван Иванов",
		Role:              model.RoleOrganisation,
		IsEnabled:         true,
		IsNonLocked:       true,
		IsApprovedByAdmin: true,
		Organisation:      &model.Organisation{Name: "Добро сърце"},
	}

	signed, err := GenerateAccessToken(user, key, 12)
	require.NoError(t, err)
	assert.Len(t, strings.Split(signed, "."), 3)

	claims, err := ValidateAccessToken(signed, &key.PublicKey)
	require.NoError(t, err)

	assert.Equal(t, "org@eventforge.bg", claims.Subject)
	assert.Equal(t, uint(1), claims.User.ID)
	assert.Equal(t, "Иван Иванов", claims.User.FullName)
	assert.Equal(t, model.RoleOrganisation, claims.User.Role)
	assert.True(t, claims.User.IsEnabled && claims.User.IsNonLocked && claims.User.IsApprovedByAdmin)
	assert.Empty(t, claims.User.Password, "password hash must not leave the server")
	assert.Nil(t, claims.User.Organisation)
	assert.WithinDuration(t, time.Now().Add(12*time.Second), claims.ExpiresAt, 2*time.Second)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	key := newKey(t)

	expired, err := GenerateAccessToken(&model.User{Email: "org@eventforge.bg"}, key, -60)
	require.NoError(t, err)
	_, err = ValidateAccessToken(expired, &key.PublicKey)
	assert.Error(t, err, "expired")

	valid, err := GenerateAccessToken(&model.User{Email: "org@eventforge.bg"}, key, 60)
	require.NoError(t, err)
	_, err = ValidateAccessToken(valid, &newKey(t).PublicKey)
	assert.Error(t, err, "signed by another key")
}

func TestUserFromClaims_Missing(t *testing.T) {
	token, err := jwt.NewBuilder().Subject("org@eventforge.bg").Build()
	require.NoError(t, err)

	_, err = UserFromClaims(token)

	assert.EqualError(t, err, "user not found in claims")
}

func TestRefreshToken(t *testing.T) {
	generated, err := GenerateRefreshToken(&model.User{ID: 42}, "secret", 12)
	require.NoError(t, err)

	assert.Equal(t, 12*time.Second, generated.ExpiresIn)
	assert.True(t, strings.HasPrefix(generated.SignedString, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9."), "want an HS256 JWT")
	assert.NotEmpty(t, generated.TokenId)

	claims, err := ValidateRefreshToken(generated.SignedString, "secret")
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserId)
	assert.Equal(t, generated.TokenId, claims.ID)
	assert.InDelta(t, 12, claims.ExpiresIn.Seconds(), 2)
	assert.WithinDuration(t, time.Now(), time.Unix(claims.IssuedAt, 0), 2*time.Second)

	_, err = ValidateRefreshToken(generated.SignedString, "another secret")
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	first, err := GenerateRefreshToken(&model.User{ID: 42}, "secret", 12)
	require.NoError(t, err)
	second, err := GenerateRefreshToken(&model.User{ID: 42}, "secret", 12)
	require.NoError(t, err)

	assert.NotEqual(t, first.TokenId, second.TokenId)
	assert.NotEqual(t, first.SignedString, second.SignedString)
}
