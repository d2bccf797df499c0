package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenParser validates access tokens issued by the identity provider.
// Supabase signs user JWTs with the project secret (HS256); validating
// locally avoids a provider round trip on every authenticated request.
type TokenParser struct {
	Secret []byte
	Leeway time.Duration
}

func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{Secret: []byte(secret), Leeway: 30 * time.Second}
}

// AccessClaims are the provider-issued claims we care about.
type AccessClaims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid access token")

// ParseAccessToken validates signature, expiry, and audience, and returns
// the claims. The subject is the provider user ID.
func (p *TokenParser) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.Secret, nil
	},
		jwt.WithLeeway(p.Leeway),
		jwt.WithAudience("authenticated"),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
