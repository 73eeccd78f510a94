// Package token signs and verifies the session cookie. The cookie value is
// an HS256 JWT whose only custom claim is the opaque session id, so the
// client can neither read another session nor forge one.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkoval-dev/goblog/internal/logger"
)

type Codec struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Codec {
	return &Codec{secretKey, ttl}
}

// Encode wraps a session id into a signed cookie value.
func (c *Codec) Encode(sessionID string) (string, error) {
	claims := jwt.MapClaims{}
	claims["sid"] = sessionID
	claims["exp"] = time.Now().Add(c.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", errors.New("can't create session token")
	}

	return signed, nil
}

// Decode verifies a cookie value and returns the session id it carries.
// Any failure (bad signature, expiry, wrong algorithm) is reported as a
// plain error; callers treat it as "no session".
func (c *Codec) Decode(signed string) (string, error) {
	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session token claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session token missing session id")
	}

	return sid, nil
}
