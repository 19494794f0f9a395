package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a session token.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed session tokens. The token is an HS256
// JWT carrying the user id and an expiry; anything that fails to decode or
// verify is treated as no session, never as an error.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (c *Codec) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify returns the user id the token was issued for. Malformed, expired
// or tampered tokens report ok=false.
func (c *Codec) Verify(tokenStr string) (int64, bool) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, false
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}
