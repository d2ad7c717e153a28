package access

import (
	"clinigate-service/internal/pkg/constvars"
	"fmt"
)

const WildcardResourceType = "*"

type ActionSet map[Action]struct{}

func newActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, action := range actions {
		set[action] = struct{}{}
	}
	return set
}

func (s ActionSet) Contains(action Action) bool {
	_, ok := s[action]
	return ok
}

// PermissionMatrix is the compiled role × resource-type → allowed-action
// table. Built once at startup and read-only afterwards; lookups for unknown
// roles or resource types resolve to an empty set, never an error.
type PermissionMatrix struct {
	entries map[Role]map[string]ActionSet
}

func NewPermissionMatrix() (*PermissionMatrix, error) {
	matrix := &PermissionMatrix{
		entries: map[Role]map[string]ActionSet{
			RoleAdmin: {
				WildcardResourceType: newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionSearch),
			},
			RolePractitioner: {
				constvars.ResourcePatient:               newActionSet(ActionRead, ActionSearch),
				constvars.ResourcePractitioner:          newActionSet(ActionRead, ActionUpdate),
				constvars.ResourceEncounter:             newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceObservation:           newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceDiagnosticReport:      newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceMedicationRequest:     newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceCarePlan:              newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceCondition:             newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceProcedure:             newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourceMedication:            newActionSet(ActionRead, ActionSearch),
				constvars.ResourceQuestionnaire:         newActionSet(ActionRead, ActionSearch),
				constvars.ResourcePayment:               newActionSet(ActionRead, ActionSearch),
				constvars.ResourceQuestionnaireResponse: newActionSet(ActionCreate, ActionRead, ActionSearch),
				WildcardResourceType:                    newActionSet(),
			},
			RolePatient: {
				constvars.ResourcePatient:               newActionSet(ActionRead, ActionUpdate),
				constvars.ResourcePractitioner:          newActionSet(ActionRead, ActionSearch),
				constvars.ResourceOrganization:          newActionSet(ActionRead, ActionSearch),
				constvars.ResourceEncounter:             newActionSet(ActionRead, ActionSearch),
				constvars.ResourceObservation:           newActionSet(ActionRead, ActionSearch),
				constvars.ResourceDiagnosticReport:      newActionSet(ActionRead, ActionSearch),
				constvars.ResourceMedication:            newActionSet(ActionRead, ActionSearch),
				constvars.ResourceMedicationRequest:     newActionSet(ActionRead, ActionSearch),
				constvars.ResourceQuestionnaire:         newActionSet(ActionRead, ActionSearch),
				constvars.ResourceQuestionnaireResponse: newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				constvars.ResourcePayment:               newActionSet(ActionCreate, ActionRead, ActionUpdate, ActionSearch),
				WildcardResourceType:                    newActionSet(),
			},
			// Pharmacist carries only the deny-by-default fallback until its
			// permissions are rolled out.
			RolePharmacist: {
				WildcardResourceType: newActionSet(),
			},
		},
	}

	for role, byResource := range matrix.entries {
		if _, ok := byResource[WildcardResourceType]; !ok {
			return nil, fmt.Errorf("permission matrix: role %s has no %q fallback entry", role, WildcardResourceType)
		}
	}

	return matrix, nil
}

// Allows reports whether the role may perform the action on the resource
// type. A missing specific entry falls back to the role's wildcard entry; a
// missing role denies.
func (m *PermissionMatrix) Allows(role Role, resourceType string, action Action) bool {
	byResource, ok := m.entries[role]
	if !ok {
		return false
	}
	actions, ok := byResource[resourceType]
	if !ok {
		actions = byResource[WildcardResourceType]
	}
	return actions.Contains(action)
}

// KnownResourceType reports whether any role carries a specific entry for
// the resource type. Routes declaring unknown types are misconfigured.
func (m *PermissionMatrix) KnownResourceType(resourceType string) bool {
	for _, byResource := range m.entries {
		if _, ok := byResource[resourceType]; ok && resourceType != WildcardResourceType {
			return true
		}
	}
	return false
}
