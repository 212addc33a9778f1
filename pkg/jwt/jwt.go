package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotPreview is returned for a valid token that does not carry the preview flag
var ErrNotPreview = errors.New("token is not a preview token")

// PreviewClaims is the payload of the preview-mode cookie
type PreviewClaims struct {
	Preview bool `json:"preview"`
	jwt.RegisteredClaims
}

// Manager signs and verifies preview tokens with a shared HMAC secret
type Manager struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a manager issuing tokens valid for ttl
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens, also used as the cookie max-age
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GeneratePreviewToken signs {"preview":true} with an expiry of now+ttl
func (m *Manager) GeneratePreviewToken() (string, error) {
	if m.secret == "" {
		return "", errors.New("preview secret is not configured")
	}
	now := m.now()
	claims := PreviewClaims{
		Preview: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidatePreviewToken checks signature, expiry and the preview flag
func (m *Manager) ValidatePreviewToken(tokenString string) (*PreviewClaims, error) {
	if m.secret == "" {
		return nil, errors.New("preview secret is not configured")
	}
	claims := &PreviewClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if !claims.Preview {
		return nil, ErrNotPreview
	}

	return claims, nil
}
