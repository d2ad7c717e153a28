package access

import (
	"clinigate-service/internal/pkg/constvars"
	"context"

	"go.uber.org/zap"
)

// AccessDecisionEngine turns (principal, route auth spec, optional resource
// id, optional query) into one allow/deny decision. It is the only component
// callers invoke directly; every absence of a matching rule denies.
type AccessDecisionEngine interface {
	Evaluate(ctx context.Context, authorizationHeader string, spec RouteAuthSpec, resourceID string, query map[string]string) (*AccessDecision, *Principal)
	Decide(ctx context.Context, request *AccessRequest) *AccessDecision
}

type accessDecisionEngine struct {
	Authenticator PrincipalAuthenticator
	Matrix        *PermissionMatrix
	Ownership     *OwnershipValidator
	Scope         *QueryScopeBuilder
	Log           *zap.Logger
}

func NewAccessDecisionEngine(
	authenticator PrincipalAuthenticator,
	matrix *PermissionMatrix,
	ownership *OwnershipValidator,
	scope *QueryScopeBuilder,
	log *zap.Logger,
) AccessDecisionEngine {
	return &accessDecisionEngine{
		Authenticator: authenticator,
		Matrix:        matrix,
		Ownership:     ownership,
		Scope:         scope,
		Log:           log,
	}
}

// Evaluate authenticates the credential and decides the request. Routes with
// no required roles allow before any credential work.
func (e *accessDecisionEngine) Evaluate(ctx context.Context, authorizationHeader string, spec RouteAuthSpec, resourceID string, query map[string]string) (*AccessDecision, *Principal) {
	if len(spec.RequiredRoles) == 0 {
		return &AccessDecision{Allowed: true, Reason: ReasonOpenRoute}, nil
	}

	principal, err := e.Authenticator.Authenticate(ctx, authorizationHeader)
	if err != nil {
		return &AccessDecision{Allowed: false, Reason: ReasonUnauthenticated}, nil
	}

	decision := e.Decide(ctx, &AccessRequest{
		Principal:  principal,
		Spec:       spec,
		ResourceID: resourceID,
		Query:      query,
	})
	return decision, principal
}

// Decide evaluates an already-authenticated request. The ordering
// short-circuits at the first determining step and fails closed: no matching
// rule anywhere in the chain means deny.
func (e *accessDecisionEngine) Decide(ctx context.Context, request *AccessRequest) *AccessDecision {
	principal := request.Principal
	spec := request.Spec

	if !spec.Requires(principal.Role) {
		return e.deny(ReasonRoleMismatch, principal, spec, request.ResourceID)
	}

	if spec.ResourceType == "" || spec.Action == "" {
		return &AccessDecision{Allowed: true, Reason: ReasonRoleOnly}
	}

	if principal.Role == RoleAdmin {
		return &AccessDecision{Allowed: true, Reason: ReasonAdminOverride}
	}

	if !e.Matrix.KnownResourceType(spec.ResourceType) {
		e.Log.Warn("route declares a resource type the permission matrix does not know",
			zap.String(constvars.LoggingResourceTypeKey, spec.ResourceType),
			zap.String(constvars.LoggingActionKey, string(spec.Action)),
		)
		return e.deny(ReasonMisconfiguredRoute, principal, spec, request.ResourceID)
	}

	if request.ResourceID != "" && e.Ownership.Applies(principal.Role, spec.ResourceType, spec.Action) {
		if !e.Ownership.Satisfied(principal, spec.ResourceType, request.ResourceID) {
			return e.deny(ReasonOwnershipDenied, principal, spec, request.ResourceID)
		}
		if !e.Matrix.Allows(principal.Role, spec.ResourceType, spec.Action) {
			return e.deny(ReasonRoleResourceActionDenied, principal, spec, request.ResourceID)
		}
		return &AccessDecision{Allowed: true, Reason: ReasonPermitted}
	}

	if request.ResourceID == "" && spec.Action == ActionSearch && e.Ownership.AppliesToSearch(principal.Role, spec.ResourceType) {
		if !e.Matrix.Allows(principal.Role, spec.ResourceType, spec.Action) {
			return e.deny(ReasonRoleResourceActionDenied, principal, spec, request.ResourceID)
		}
		scoped, directID := e.Scope.BuildScope(principal, spec.ResourceType, request.Query)
		return &AccessDecision{
			Allowed:          true,
			Reason:           ReasonPermitted,
			MutatedQuery:     scoped,
			DirectResourceID: directID,
		}
	}

	if !e.Matrix.Allows(principal.Role, spec.ResourceType, spec.Action) {
		return e.deny(ReasonRoleResourceActionDenied, principal, spec, request.ResourceID)
	}
	return &AccessDecision{Allowed: true, Reason: ReasonPermitted}
}

func (e *accessDecisionEngine) deny(reason DecisionReason, principal *Principal, spec RouteAuthSpec, resourceID string) *AccessDecision {
	e.Log.Info("access denied",
		zap.String(constvars.LoggingReasonKey, string(reason)),
		zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
		zap.String(constvars.LoggingRoleKey, string(principal.Role)),
		zap.String(constvars.LoggingResourceTypeKey, spec.ResourceType),
		zap.String(constvars.LoggingActionKey, string(spec.Action)),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return &AccessDecision{Allowed: false, Reason: reason}
}
