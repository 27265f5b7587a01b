package sessiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
)

var (
	ErrEmptySecret  = errors.New("session secret is empty")
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims carried by a session token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewIssuer creates an issuer. A non-positive ttl defaults to 24h.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, clock: time.Now}, nil
}

// WithClock replaces the issuer's time source
func (i *Issuer) WithClock(clock func() time.Time) *Issuer {
	i.clock = clock
	return i
}

// Issue signs a token for the caller
func (i *Issuer) Issue(caller session.Context) (string, time.Time, error) {
	if caller == nil || caller.CallerID() == "" {
		return "", time.Time{}, errors.New("empty caller id passed to Issue")
	}

	now := i.clock()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Role: string(caller.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.CallerID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and returns the session context it carries
func (i *Issuer) Parse(tokenString string) (session.Context, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.clock), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	role, err := session.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return session.StaticContext{ID: claims.Subject, CallerAs: role}, nil
}
