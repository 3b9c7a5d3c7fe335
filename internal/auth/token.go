package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// DefaultTokenTTL is the validity window of issued tokens: 360000 seconds,
// one hundred hours.
const DefaultTokenTTL = 360000 * time.Second

// Claims is the signed token payload.
type Claims struct {
	Name   string      `json:"name"`
	Role   shared.Role `json:"role"`
	UserID int64       `json:"id"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies identity tokens with a process-wide
// symmetric secret. The secret is injected at construction and never changes
// for the process lifetime.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec constructs a codec. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed token embedding the subject's id, name and role.
func (c *TokenCodec) Issue(id int64, name string, role shared.Role) (string, error) {
	now := c.now()
	claims := Claims{
		Name:   name,
		Role:   role,
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry of a raw token. A failed
// verification is returned as a *Failure value; the codec never panics on
// untrusted input.
func (c *TokenCodec) Verify(raw string) (*Claims, *Failure) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &Failure{Reason: ReasonExpired}
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, &Failure{Reason: ReasonSignatureInvalid}
		default:
			return nil, &Failure{Reason: ReasonMalformed}
		}
	}
	return claims, nil
}
