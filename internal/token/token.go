// Package token mints and validates signed password-reset tokens.
package token

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposePasswordReset = "password_reset"

// ResetToken issues and parses HS256 tokens bound to a single user and
// carrying a unique token id (jti) for single-use enforcement.
type ResetToken struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new ResetToken issuer.
func New(secretKey string, expiration time.Duration) *ResetToken {
	return &ResetToken{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a reset token for the given user id and returns the
// signed token together with its jti.
func (t *ResetToken) Generate(ctx context.Context, userID int64) (string, string, error) {
	jti := uuid.New().String()

	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(userID, 10),
		"jti":     jti,
		"purpose": purposePasswordReset,
		"exp":     time.Now().Add(t.Exp).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.SecretKey))
	if err != nil {
		return "", "", err
	}

	return signed, jti, nil
}

// Parse validates the token signature, expiry, and purpose, and returns the
// target user id and the token's jti.
func (t *ResetToken) Parse(ctx context.Context, tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.SecretKey), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	if purpose, _ := claims["purpose"].(string); purpose != purposePasswordReset {
		return 0, "", errors.New("unexpected token purpose")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, "", errors.New("invalid subject format")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return 0, "", errors.New("jti not found in token")
	}

	return userID, jti, nil
}
