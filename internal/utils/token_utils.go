package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Role   string `json:"role"`
	School string `json:"school,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the caller identity.
func (c SessionClaims) Identity() domain.Identity {
	return domain.Identity{UserID: c.Subject, Role: domain.Role(c.Role), SchoolID: c.School}
}

// GenerateJWT generates a new JWT token for the given identity.
func GenerateJWT(identity domain.Identity, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role:   string(identity.Role),
		School: identity.SchoolID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the SessionClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}
	if _, ok := domain.ParseRole(claims.Role); !ok {
		return nil, errors.New("token role invalid")
	}

	return claims, nil
}
