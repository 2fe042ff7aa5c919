// Package token issues and resolves the bearer tokens used to authenticate
// API requests. Tokens are HS256-signed JWTs carrying the user id as the
// subject claim; the signing key and lifetime come from configuration.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nwarren/tripshare/internal/domain"
)

// Issuer signs and verifies access tokens.
// Construct one at startup with New and pass it explicitly to the handler
// layer — there is no package-level signing state.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// New returns an Issuer that signs tokens with secret and sets their
// expiry ttl from the time of issue.
func New(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token whose subject is userID.
// Each token carries a unique jti so individual tokens are distinguishable
// in logs even for the same user.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token.Issuer.Issue: %w", err)
	}
	return signed, nil
}

// Resolve verifies raw and returns the user id it was issued for.
// Any failure — bad signature, wrong algorithm, expired, malformed subject —
// comes back as domain.ErrUnauthenticated; callers map it to HTTP 401 and
// never surface the underlying parse detail to the client.
func (i *Issuer) Resolve(raw string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("token.Issuer.Resolve: %w: %w", domain.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("token.Issuer.Resolve: %w: unexpected claims type", domain.ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token.Issuer.Resolve: %w: bad subject", domain.ErrUnauthenticated)
	}
	return userID, nil
}
