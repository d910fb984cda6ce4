package auth

import (
	"context"
	"errors"
	"time"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the custom UserID claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// JWTVerifier validates HS256-signed tokens issued by the identity provider.
type JWTVerifier struct {
	secretKey []byte
}

func NewJWTVerifier(secretKey []byte) *JWTVerifier {
	return &JWTVerifier{secretKey: secretKey}
}

// Verify parses and validates the token and returns the user id it carries.
// Expired, malformed and wrongly-signed tokens all fail.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// GenerateToken issues an HS256 token carrying userID, valid for
// validityDuration. Used by tests and local tooling; the gateway itself only
// verifies.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
