package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wtwr-api/internal/apperr"
)

// IssueToken signs a credential token bound to the given account id,
// valid for ttl from now.
func IssueToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	return token.SignedString(secret)
}

// ResolveIdentity verifies a credential token and returns the account id it
// is bound to. Absent, malformed, expired, or badly signed tokens all resolve
// to the same unauthenticated failure.
func ResolveIdentity(tokenString string, secret []byte) (string, error) {
	if tokenString == "" {
		return "", apperr.Unauthenticated("Authorization required")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperr.Unauthenticated("Authorization required")
	}

	return claims.Subject, nil
}

// AuthorizeOwner decides whether the acting identity may mutate a resource
// recorded as owned by owner. The caller must already be authenticated;
// this only compares identities.
func AuthorizeOwner(actor, owner string) error {
	if actor != owner {
		return apperr.Forbidden()
	}
	return nil
}
