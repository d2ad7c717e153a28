package access

import (
	"clinigate-service/internal/pkg/constvars"
	"strings"
)

type Role string

const (
	RoleAdmin        Role = constvars.ClinigateRoleAdmin
	RolePractitioner Role = constvars.ClinigateRolePractitioner
	RolePatient      Role = constvars.ClinigateRolePatient
	RolePharmacist   Role = constvars.ClinigateRolePharmacist
)

// ParseRole folds a raw role claim to its canonical enum value. Matching is
// case-insensitive; every comparison after this boundary uses the enum.
func ParseRole(raw string) (Role, bool) {
	for _, role := range []Role{RoleAdmin, RolePractitioner, RolePatient, RolePharmacist} {
		if strings.EqualFold(raw, string(role)) {
			return role, true
		}
	}
	return "", false
}

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
)

// Principal is the authenticated caller's identity for one request.
// Immutable once constructed from a validated credential.
type Principal struct {
	SubjectID          string
	Email              string
	Role               Role
	LinkedResourceID   string
	LinkedResourceType string
}

// RouteAuthSpec is declared alongside a route at registration time and never
// mutated afterwards. An empty RequiredRoles set marks the route open; a
// zero ResourceType/Action pair means the role check alone is the policy.
type RouteAuthSpec struct {
	RequiredRoles []Role
	ResourceType  string
	Action        Action
}

func (s RouteAuthSpec) Requires(role Role) bool {
	for _, required := range s.RequiredRoles {
		if required == role {
			return true
		}
	}
	return false
}

// RouteSpecBuilder assembles RouteAuthSpec values at route registration.
type RouteSpecBuilder struct {
	spec RouteAuthSpec
}

func NewRouteSpec() *RouteSpecBuilder {
	return &RouteSpecBuilder{}
}

func (b *RouteSpecBuilder) Roles(roles ...Role) *RouteSpecBuilder {
	b.spec.RequiredRoles = roles
	return b
}

func (b *RouteSpecBuilder) Resource(resourceType string, action Action) *RouteSpecBuilder {
	b.spec.ResourceType = resourceType
	b.spec.Action = action
	return b
}

func (b *RouteSpecBuilder) Build() RouteAuthSpec {
	return b.spec
}

type AccessRequest struct {
	Principal  *Principal
	Spec       RouteAuthSpec
	ResourceID string
	Query      map[string]string
}

type DecisionReason string

const (
	ReasonOpenRoute                DecisionReason = "open_route"
	ReasonRoleOnly                 DecisionReason = "role_only"
	ReasonAdminOverride            DecisionReason = "admin_override"
	ReasonPermitted                DecisionReason = "permitted"
	ReasonUnauthenticated          DecisionReason = "unauthenticated"
	ReasonRoleMismatch             DecisionReason = "role_mismatch"
	ReasonOwnershipDenied          DecisionReason = "ownership_denied"
	ReasonRoleResourceActionDenied DecisionReason = "role_resource_action_denied"
	ReasonMisconfiguredRoute       DecisionReason = "misconfigured_route"
)

// AccessDecision is the engine's terminal verdict for one request. A
// non-empty DirectResourceID degrades a list request to a single-record
// fetch of that id.
type AccessDecision struct {
	Allowed          bool
	Reason           DecisionReason
	MutatedQuery     map[string]string
	DirectResourceID string
}
