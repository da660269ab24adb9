package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/canonical/ratings/apperr"
)

func toAppErr(err error) (*apperr.Error, bool) {
	return apperr.As(err)
}

// signExpired builds a token with the same signing key as codec but an
// expiry in the past, to exercise the expired-token branch of Verify
// without depending on wall-clock sleeps.
func signExpired(t *testing.T, codec *Codec) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "expired-client-hash",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	})

	signed, err := token.SignedString(codec.signingKey)
	require.NoError(t, err)

	return signed
}
