package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/jobboard/internal/types"
)

// Actor kinds carried in access tokens
const (
	KindCandidate = "candidate"
	KindCompany   = "company"
)

// Claims are the access token claims. Subject holds the actor id.
type Claims struct {
	Kind      string `json:"kind"`
	Email     string `json:"email"`
	LoginType string `json:"loginType,omitempty"`
	jwt.RegisteredClaims
}

// Tokens is the token payload returned on login and registration
type Tokens struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   string `json:"expiresIn"`
}

// TokenManager issues and verifies HS256 access tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the actor
func (m *TokenManager) Issue(kind, id, email, loginType string) (*Tokens, error) {
	now := time.Now()
	claims := &Claims{
		Kind:      kind,
		Email:     email,
		LoginType: loginType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Tokens{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   m.ttl.String(),
	}, nil
}

// Verify parses and validates a token, mapping failures to INVALID_TOKEN or TOKEN_EXPIRED
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, types.ErrTokenExpired
		}
		return nil, types.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, types.ErrInvalidToken
	}
	return claims, nil
}
