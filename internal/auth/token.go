package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller derived from a bearer token.
type Identity struct {
	ID       uuid.UUID
	Username string
}

// Claims holds token claims including user ID and username.
type Claims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Identity converts claims to a caller identity.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Username: c.Username}
}

// TokenService issues and checks bearer tokens. Verify is the
// cryptographic check and must back every authorization decision; Decode
// is a non-cryptographic peek for optional-identity read paths only.
type TokenService struct {
	secret []byte
	expire time.Duration
}

// NewTokenService creates a token service with the given expiry in hours.
func NewTokenService(secret string, expireHours int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expire: time.Duration(expireHours) * time.Hour,
	}
}

// Generate creates a signed token for the user.
func (s *TokenService) Generate(userID uuid.UUID, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Expiry returns the configured token lifetime.
func (s *TokenService) Expiry() time.Duration {
	return s.expire
}

// Verify parses and validates a token, returning claims or an error.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Decode parses a token WITHOUT verifying the signature and returns nil
// on any failure. Listing endpoints use it so both signed-in and
// anonymous callers work; the result only drives field redaction, never
// a 401/403.
func (s *TokenService) Decode(tokenString string) *Claims {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil
	}
	return &claims
}
