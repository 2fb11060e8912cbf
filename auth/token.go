package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken wraps a session token in a signed JWT for transport in the
// Authorization header. The session row remains the source of truth, so
// logout and stale-user cleanup revoke access server-side regardless of
// the JWT's lifetime.
func IssueToken(sessionToken string) (string, error) {
	claims := jwt.MapClaims{
		"session_token": sessionToken,
		"exp":           time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// ParseToken validates a JWT and extracts the session token it carries.
func ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sessionToken, ok := claims["session_token"].(string)
	if !ok || sessionToken == "" {
		return "", errors.New("token carries no session")
	}
	return sessionToken, nil
}
