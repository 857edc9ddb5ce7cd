package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager(testSecret, "bookstore-api")

	token, expiresAt, err := m.GenerateToken("user-1", "admin@bookstore.com", []string{"Administrator"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, time.Minute)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@bookstore.com", claims.Subject)
	assert.Equal(t, "bookstore-api", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"bookstore-api"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasRole("Administrator"))
	assert.False(t, claims.HasRole("Customer"))
}

func TestTokenIDsAreUnique(t *testing.T) {
	m := NewManager(testSecret, "bookstore-api")

	a, _, err := m.GenerateToken("u", "u@mail.com", nil)
	require.NoError(t, err)
	b, _, err := m.GenerateToken("u", "u@mail.com", nil)
	require.NoError(t, err)

	ca, err := m.ValidateToken(a)
	require.NoError(t, err)
	cb, err := m.ValidateToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateRejects(t *testing.T) {
	m := NewManager(testSecret, "bookstore-api")
	token, _, err := m.GenerateToken("user-1", "a@b.com", nil)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		late := NewManager(testSecret, "bookstore-api")
		late.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }

		_, err := late.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("ffffffffffffffffffffffffffffffff", "bookstore-api")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewManager(testSecret, "someone-else")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := Claims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "bookstore-api",
				Audience:  jwt.ClaimStrings{"bookstore-api"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = m.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
