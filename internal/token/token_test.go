package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestResetToken_GenerateAndParse(t *testing.T) {
	rt := New("test-secret", time.Minute)
	ctx := context.Background()

	signed, jti, err := rt.Generate(ctx, 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, jti)

	userID, parsedJTI, err := rt.Parse(ctx, signed)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, jti, parsedJTI)
}

func TestResetToken_UniqueJTIPerToken(t *testing.T) {
	rt := New("test-secret", time.Minute)
	ctx := context.Background()

	_, jti1, err := rt.Generate(ctx, 1)
	assert.NoError(t, err)
	_, jti2, err := rt.Generate(ctx, 1)
	assert.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestResetToken_Expired(t *testing.T) {
	rt := New("test-secret", -time.Minute) // already expired
	ctx := context.Background()

	signed, _, err := rt.Generate(ctx, 7)
	assert.NoError(t, err)

	_, _, err = rt.Parse(ctx, signed)
	assert.Error(t, err)
}

func TestResetToken_WrongSecret(t *testing.T) {
	ctx := context.Background()

	signed, _, err := New("secret-a", time.Minute).Generate(ctx, 7)
	assert.NoError(t, err)

	_, _, err = New("secret-b", time.Minute).Parse(ctx, signed)
	assert.Error(t, err)
}

func TestResetToken_GarbageInput(t *testing.T) {
	rt := New("test-secret", time.Minute)
	ctx := context.Background()

	_, _, err := rt.Parse(ctx, "not.a.token")
	assert.Error(t, err)

	_, _, err = rt.Parse(ctx, "")
	assert.Error(t, err)
}

func TestResetToken_WrongPurposeRejected(t *testing.T) {
	rt := New("test-secret", time.Minute)
	ctx := context.Background()

	claims := jwt.MapClaims{
		"sub":     "42",
		"jti":     "some-jti",
		"purpose": "session",
		"exp":     time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, _, err = rt.Parse(ctx, signed)
	assert.Error(t, err)
}
