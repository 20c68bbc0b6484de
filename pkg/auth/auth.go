package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"vidshare/cmd/config"
)

// ErrInvalidToken covers every verification failure: bad signature, bad
// signing method, malformed token, expiry. Callers get no detail on which
// check failed.
var ErrInvalidToken = errors.New("auth: invalid token")

type Claims struct {
	UserID uint `json:"userId"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token carrying the user id, expiring after
// the configured TTL (7 days by default).
func GenerateJWT(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(config.TokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// ValidateJWT verifies signature and expiry and returns the claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
