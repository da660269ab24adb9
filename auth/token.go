// Package auth implements the token codec (§4.5) and the gRPC
// authentication middleware (§4.6) that gates every non-public
// operation.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/ratings/apperr"
)

// tokenTTL is the fixed lifetime every issued token carries, per §4.5.
const tokenTTL = 24 * time.Hour

// Claim is the decoded token payload, carrying the subject
// (client_hash) and expiry.
type Claim struct {
	Subject   string
	ExpiresAt time.Time
}

type claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies signed bearer tokens. It satisfies the
// CredentialVerifier capability set described in §9: verify(header) and
// unauthorized(reason), realized here as Verify and the apperr helpers.
type Codec struct {
	signingKey []byte
}

// NewCodec constructs a Codec from a raw (already base64-decoded)
// shared secret.
func NewCodec(signingKey []byte) *Codec {
	return &Codec{signingKey: signingKey}
}

// NewSigningKey generates a fresh 256-bit base64-encoded secret, for
// operators provisioning a new environment. It is a startup-time
// convenience, never called from a request path.
func NewSigningKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Issue signs a token whose subject is the user's client_hash, expiring
// tokenTTL (1 day) from now.
func (c *Codec) Issue(clientHash string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientHash,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", apperr.Internalf("failed to sign token", err)
	}

	return signed, nil
}

// Verify decodes and validates a token, returning the resulting Claim.
// Expiry and signature failures both classify as Unauthenticated with
// the same generic message, per §4.5/§4.6 — callers must not branch on
// the underlying cause.
func (c *Codec) Verify(token string) (Claim, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	if err != nil || !parsed.Valid {
		return Claim{}, apperr.Unauthenticatedf("invalid token")
	}

	claims, ok := parsed.Claims.(*claims)
	if !ok || claims.Subject == "" {
		return Claim{}, apperr.Unauthenticatedf("invalid token")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return Claim{Subject: claims.Subject, ExpiresAt: expiresAt}, nil
}
