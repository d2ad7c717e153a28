package access

import (
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const (
	claimSubject          = "sub"
	claimEmail            = "email"
	claimRole             = "role"
	claimLinkedResourceID = "fhir_id"
)

type PrincipalAuthenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*Principal, error)
}

type jwtPrincipalAuthenticator struct {
	secret string
}

func NewJWTPrincipalAuthenticator(secret string) PrincipalAuthenticator {
	return &jwtPrincipalAuthenticator{secret: secret}
}

// Authenticate validates the bearer credential and produces the request's
// Principal. Signature and expiry checks are CPU-bound; no external service
// is consulted.
func (a *jwtPrincipalAuthenticator) Authenticate(ctx context.Context, authorizationHeader string) (*Principal, error) {
	if authorizationHeader == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	if !strings.HasPrefix(authorizationHeader, constvars.BearerTokenPrefix) {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	tokenString := strings.TrimPrefix(authorizationHeader, constvars.BearerTokenPrefix)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(a.secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	subject, _ := claims[claimSubject].(string)
	rawRole, _ := claims[claimRole].(string)
	if subject == "" || rawRole == "" {
		return nil, exceptions.ErrTokenClaimsMissing(nil)
	}

	role, ok := ParseRole(rawRole)
	if !ok {
		return nil, exceptions.ErrRoleUnknown(nil)
	}

	email, _ := claims[claimEmail].(string)
	linkedID, _ := claims[claimLinkedResourceID].(string)

	principal := &Principal{
		SubjectID:        subject,
		Email:            email,
		Role:             role,
		LinkedResourceID: linkedID,
	}
	switch role {
	case RolePatient:
		principal.LinkedResourceType = constvars.ResourcePatient
	case RolePractitioner:
		principal.LinkedResourceType = constvars.ResourcePractitioner
	}

	return principal, nil
}
