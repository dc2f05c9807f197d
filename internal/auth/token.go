// Package auth issues and verifies the HS256 bearer tokens that carry a
// player's user id.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of issued tokens.
const DefaultTTL = 10 * time.Minute

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// Config configures an Authority.
type Config struct {
	Key      []byte
	Issuer   string
	Audience string
	Subject  string
	TTL      time.Duration
	Now      func() time.Time
}

// Identity is the player a verified token speaks for.
type Identity struct {
	UserID   string
	UserName string
}

// claims is the JWT payload. The custom claim names are part of the wire format.
type claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"UserId"`
	UserName string `json:"UserName"`
}

// Authority signs and verifies tokens with one shared key.
type Authority struct {
	cfg Config
}

// New validates cfg and returns an Authority.
func New(cfg Config) (*Authority, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("jwt key is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Authority{cfg: cfg}, nil
}

// Issue returns a signed token for the user, without the Bearer prefix.
func (a *Authority) Issue(id Identity) (string, error) {
	if strings.TrimSpace(id.UserID) == "" || strings.TrimSpace(id.UserName) == "" {
		return "", fmt.Errorf("%w: userId and userName are required", domain.ErrInvalidInput)
	}

	now := a.cfg.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.cfg.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TTL)),
		},
		UserID:   id.UserID,
		UserName: id.UserName,
	}
	if a.cfg.Issuer != "" {
		c.Issuer = a.cfg.Issuer
	}
	if a.cfg.Audience != "" {
		c.Audience = jwt.ClaimStrings{a.cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, issuer and audience and returns the
// identity the token carries. Every failure wraps domain.ErrUnauthenticated.
func (a *Authority) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.cfg.Now),
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}
	if a.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.cfg.Audience))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return a.cfg.Key, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if strings.TrimSpace(parsed.UserID) == "" {
		return Identity{}, fmt.Errorf("%w: token has no UserId", domain.ErrUnauthenticated)
	}
	return Identity{UserID: parsed.UserID, UserName: parsed.UserName}, nil
}

// FromHeader extracts the token from an Authorization header value.
func FromHeader(header string) (string, bool) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(BearerPrefix):]), true
}
