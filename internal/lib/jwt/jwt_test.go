package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken(42, testSecret, time.Minute)
	require.NoError(t, err)

	userID, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenTampered(t *testing.T) {
	token, err := NewToken(42, testSecret, time.Minute)
	require.NoError(t, err)

	// flip one character at every position; none of the mutants may verify
	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}

		_, err := ParseToken(string(mutated), testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken, "position %d", i)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewToken(42, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	token, err := NewToken(42, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenBadSubject(t *testing.T) {
	tests := []struct {
		name   string
		claims jwtlib.MapClaims
	}{
		{
			name: "missing sub",
			claims: jwtlib.MapClaims{
				"exp": time.Now().Add(time.Minute).Unix(),
			},
		},
		{
			name: "non-numeric sub",
			claims: jwtlib.MapClaims{
				"sub": "alice",
				"exp": time.Now().Add(time.Minute).Unix(),
			},
		},
		{
			name: "numeric but not a string sub",
			claims: jwtlib.MapClaims{
				"sub": 42,
				"exp": time.Now().Add(time.Minute).Unix(),
			},
		},
		{
			name: "missing exp",
			claims: jwtlib.MapClaims{
				"sub": "42",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tt.claims)
			signed, err := token.SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = ParseToken(signed, testSecret)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}
