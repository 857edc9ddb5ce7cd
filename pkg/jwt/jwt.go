package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = 6 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents JWT claims structure.
// Subject carries the user's email, ID carries a unique token id.
type Claims struct {
	UserID string   `json:"nameid"`
	Roles  []string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token was issued with the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Manager handles JWT operations
type Manager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewManager creates new JWT manager. The issuer is also used as audience.
func NewManager(secret, issuer string) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// GenerateToken signs a HS256 token for the given identity and returns it
// together with its expiry.
func (m *Manager) GenerateToken(userID, email string, roles []string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(TokenTTL)

	claims := Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, expiry, issuer and audience and returns the claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
