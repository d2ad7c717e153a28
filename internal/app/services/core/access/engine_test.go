package access

import (
	"clinigate-service/internal/pkg/constvars"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) AccessDecisionEngine {
	t.Helper()
	matrix, err := NewPermissionMatrix()
	require.NoError(t, err)
	return NewAccessDecisionEngine(
		NewJWTPrincipalAuthenticator(testJWTSecret),
		matrix,
		NewOwnershipValidator(),
		NewQueryScopeBuilder(),
		zap.NewNop(),
	)
}

func principalFor(role Role, linkedID string) *Principal {
	principal := &Principal{
		SubjectID:        "user-" + linkedID,
		Role:             role,
		LinkedResourceID: linkedID,
	}
	switch role {
	case RolePatient:
		principal.LinkedResourceType = constvars.ResourcePatient
	case RolePractitioner:
		principal.LinkedResourceType = constvars.ResourcePractitioner
	}
	return principal
}

func TestAccessDecisionEngineEvaluate(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	t.Run("open route allows before authentication", func(t *testing.T) {
		spec := NewRouteSpec().Build()

		decision, principal := engine.Evaluate(ctx, "garbage-header", spec, "", nil)
		assert.True(t, decision.Allowed, "a route with no required roles is open")
		assert.Equal(t, ReasonOpenRoute, decision.Reason)
		assert.Nil(t, principal, "no credential work should happen for open routes")
	})

	t.Run("bad credential denies as unauthenticated", func(t *testing.T) {
		spec := NewRouteSpec().Roles(RolePatient).Build()

		decision, principal := engine.Evaluate(ctx, "Bearer not-a-token", spec, "", nil)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonUnauthenticated, decision.Reason)
		assert.Nil(t, principal)
	})

	t.Run("valid token flows through to a decision", func(t *testing.T) {
		signed := signTestToken(t, testJWTSecret, jwt.MapClaims{
			"sub":     "user-1",
			"role":    "patient",
			"fhir_id": "p1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		spec := NewRouteSpec().
			Roles(RoleAdmin, RolePractitioner, RolePatient, RolePharmacist).
			Resource(constvars.ResourcePatient, ActionRead).
			Build()

		decision, principal := engine.Evaluate(ctx, constvars.BearerTokenPrefix+signed, spec, "p1", nil)
		require.NotNil(t, principal)
		assert.True(t, decision.Allowed, "a patient reading their own record should be allowed")
		assert.Equal(t, ReasonPermitted, decision.Reason)
		assert.Equal(t, RolePatient, principal.Role)
	})
}

func TestAccessDecisionEngineDecide(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	allRoles := []Role{RoleAdmin, RolePractitioner, RolePatient, RolePharmacist}

	resourceSpec := func(resourceType string, action Action) RouteAuthSpec {
		return NewRouteSpec().Roles(allRoles...).Resource(resourceType, action).Build()
	}

	t.Run("role mismatch", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      NewRouteSpec().Roles(RoleAdmin).Resource(constvars.ResourcePatient, ActionDelete).Build(),
		})
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonRoleMismatch, decision.Reason)
	})

	t.Run("role check alone is the policy", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePharmacist, ""),
			Spec:      NewRouteSpec().Roles(RolePharmacist).Build(),
		})
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonRoleOnly, decision.Reason)
	})

	t.Run("admin override", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RoleAdmin, ""),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionDelete),
			ResourceID: "p42",
		})
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonAdminOverride, decision.Reason)
	})

	t.Run("unknown resource type denies as misconfigured", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      resourceSpec("Device", ActionRead),
		})
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonMisconfiguredRoute, decision.Reason)
	})

	t.Run("patient reads own record", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePatient, "p1"),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionRead),
			ResourceID: "p1",
		})
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonPermitted, decision.Reason)
	})

	t.Run("patient reads another patient's record", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePatient, "p1"),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionRead),
			ResourceID: "p2",
		})
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonOwnershipDenied, decision.Reason)
	})

	t.Run("prefixed route id matches the linked id", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePatient, "p1"),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionRead),
			ResourceID: "res-p1",
		})
		assert.True(t, decision.Allowed, "id normalization should run before the ownership comparison")
	})

	t.Run("ownership satisfied but action not granted", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePatient, "p1"),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionDelete),
			ResourceID: "p1",
		})
		assert.False(t, decision.Allowed, "owning the record does not grant the action")
		assert.Equal(t, ReasonRoleResourceActionDenied, decision.Reason)
	})

	t.Run("practitioner reads an arbitrary patient record", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePractitioner, "d1"),
			Spec:       resourceSpec(constvars.ResourcePatient, ActionRead),
			ResourceID: "p999",
		})
		assert.True(t, decision.Allowed, "the patient-of-principal relation passes without a lookup")
		assert.Equal(t, ReasonPermitted, decision.Reason)
	})

	t.Run("practitioner creates a condition", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePractitioner, "d1"),
			Spec:      resourceSpec(constvars.ResourceCondition, ActionCreate),
		})
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonPermitted, decision.Reason)
	})

	t.Run("patient creating a condition is denied", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      resourceSpec(constvars.ResourceCondition, ActionCreate),
		})
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonRoleResourceActionDenied, decision.Reason)
	})

	t.Run("patient observation search gets a scoped query", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      resourceSpec(constvars.ResourceObservation, ActionSearch),
			Query:     map[string]string{"status": "final"},
		})
		require.True(t, decision.Allowed)
		assert.Equal(t, ReasonPermitted, decision.Reason)
		assert.Equal(t, "p1", decision.MutatedQuery[constvars.SearchParamSubject], "the subject filter should carry the linked id")
		assert.Equal(t, "final", decision.MutatedQuery["status"], "caller-supplied keys survive scoping")
		assert.Empty(t, decision.DirectResourceID)
	})

	t.Run("patient search over the patient type is not granted", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      resourceSpec(constvars.ResourcePatient, ActionSearch),
		})
		assert.False(t, decision.Allowed, "the matrix grants patients no search over the patient type")
		assert.Equal(t, ReasonRoleResourceActionDenied, decision.Reason)
	})

	t.Run("practitioner patient search is scoped to the panel", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal: principalFor(RolePractitioner, "d1"),
			Spec:      resourceSpec(constvars.ResourcePatient, ActionSearch),
			Query:     map[string]string{},
		})
		require.True(t, decision.Allowed)
		assert.Equal(t, "d1", decision.MutatedQuery[constvars.SearchParamGeneralPractitioner])
	})

	t.Run("insensitive type decides via the matrix alone", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePatient, "p1"),
			Spec:       resourceSpec(constvars.ResourceMedication, ActionRead),
			ResourceID: "m1",
		})
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonPermitted, decision.Reason)
		assert.Nil(t, decision.MutatedQuery, "no scoping applies to matrix-only decisions")
	})

	t.Run("pharmacist is denied by the wildcard fallback", func(t *testing.T) {
		decision := engine.Decide(ctx, &AccessRequest{
			Principal:  principalFor(RolePharmacist, ""),
			Spec:       resourceSpec(constvars.ResourceMedication, ActionRead),
			ResourceID: "m1",
		})
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonRoleResourceActionDenied, decision.Reason)
	})

	t.Run("identical requests produce identical decisions", func(t *testing.T) {
		request := &AccessRequest{
			Principal: principalFor(RolePatient, "p1"),
			Spec:      resourceSpec(constvars.ResourceObservation, ActionSearch),
			Query:     map[string]string{"status": "final"},
		}

		first := engine.Decide(ctx, request)
		second := engine.Decide(ctx, request)
		assert.Equal(t, first, second, "decisions are pure functions of their inputs")
	})
}
