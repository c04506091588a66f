// Package auth issues and verifies the bearer tokens that guard catalog
// mutations.
package auth

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"

	defaultIssuer = "storefront-catalog"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("insufficient role")
)

type TokenMaker struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{
		secret: []byte(secret),
		issuer: defaultIssuer,
		now:    time.Now,
	}
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// New signs a token for subject. A non-positive ttl yields a token without expiry.
func (t *TokenMaker) New(subject, role string, ttl time.Duration) (string, error) {
	now := t.now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			Issuer:   t.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return s, nil
}

func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	var c Claims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || token == nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if c.Issuer != "" && c.Issuer != t.issuer {
		return Claims{}, errors.Wrap(ErrInvalidToken, "issuer")
	}

	return c, nil
}
