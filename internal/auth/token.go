// Package auth issues and verifies the session tokens that gate every
// connection. Verification is exposed as an interface so the rest of the
// backend never assumes a particular identity provider.
package auth

import (
	"errors"
	"fmt"
	"time"

	"prepgogo/backend/internal/config"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no credential was supplied at all.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken is returned when a credential fails verification.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Identity is the verified subject of a token.
type Identity struct {
	UserID   string
	Username string
}

// TokenVerifier validates an opaque bearer token and resolves the identity
// behind it.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// Service issues and verifies HS256 JWTs.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue creates a signed token carrying the user id and display name.
func (s *Service) Issue(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(config.TokenTTL).Unix(),
		"iss":      config.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. An empty display name in the
// claims resolves to "Guest".
func (s *Service) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	if username == "" {
		username = "Guest"
	}

	return &Identity{UserID: userID, Username: username}, nil
}
