package access

import (
	"clinigate-service/internal/pkg/constvars"
)

type RelationKind int

const (
	RelationSelfRecord RelationKind = iota
	RelationPatientOfPrincipal
	RelationPractitionerOfPrincipal
	RelationUnrestricted
)

// Resource types whose records relate to a single patient or practitioner
// and therefore carry an ownership restriction on direct access.
var ownershipSensitiveResources = map[string]struct{}{
	constvars.ResourcePatient:               {},
	constvars.ResourcePractitioner:          {},
	constvars.ResourceEncounter:             {},
	constvars.ResourceObservation:           {},
	constvars.ResourceDiagnosticReport:      {},
	constvars.ResourceMedicationRequest:     {},
	constvars.ResourceQuestionnaireResponse: {},
	constvars.ResourcePayment:               {},
}

var ownershipSensitiveActions = map[Action]struct{}{
	ActionRead:   {},
	ActionUpdate: {},
	ActionDelete: {},
}

// OwnershipValidator decides whether a concrete resource belongs to the
// principal. It performs no store lookups: every relation either compares
// normalized ids or passes through.
type OwnershipValidator struct{}

func NewOwnershipValidator() *OwnershipValidator {
	return &OwnershipValidator{}
}

// Applies reports whether an ownership restriction governs direct access to
// a concrete resource. Admin skips restriction entirely.
func (v *OwnershipValidator) Applies(role Role, resourceType string, action Action) bool {
	if role == RoleAdmin {
		return false
	}
	if _, ok := ownershipSensitiveResources[resourceType]; !ok {
		return false
	}
	_, ok := ownershipSensitiveActions[action]
	return ok
}

// AppliesToSearch reports whether a list request over the resource type must
// be scoped to the principal's own records instead.
func (v *OwnershipValidator) AppliesToSearch(role Role, resourceType string) bool {
	if role == RoleAdmin {
		return false
	}
	_, ok := ownershipSensitiveResources[resourceType]
	return ok
}

// Relation resolves the relation kind the principal's role has to records of
// the resource type.
func (v *OwnershipValidator) Relation(role Role, resourceType string) RelationKind {
	switch resourceType {
	case constvars.ResourcePatient:
		if role == RolePatient {
			return RelationSelfRecord
		}
		return RelationPatientOfPrincipal
	case constvars.ResourcePractitioner:
		if role == RolePractitioner {
			return RelationSelfRecord
		}
		return RelationPractitionerOfPrincipal
	default:
		return RelationUnrestricted
	}
}

// Satisfied reports whether the concrete resource id belongs to the
// principal. Self records compare normalized ids; the patient-of-principal
// and practitioner-of-principal relations currently pass without an indirect
// store lookup, so a practitioner may access any patient's record once the
// role and action checks pass.
func (v *OwnershipValidator) Satisfied(principal *Principal, resourceType, resourceID string) bool {
	switch v.Relation(principal.Role, resourceType) {
	case RelationSelfRecord:
		return NormalizeResourceID(resourceID) == NormalizeResourceID(principal.LinkedResourceID)
	case RelationPatientOfPrincipal, RelationPractitionerOfPrincipal, RelationUnrestricted:
		return true
	default:
		return false
	}
}
