package routers

import (
	"clinigate-service/internal/app/delivery/http/middlewares"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/app/services/core/resources"
	"clinigate-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

var routedResourceTypes = []string{
	constvars.ResourcePatient,
	constvars.ResourcePractitioner,
	constvars.ResourceOrganization,
	constvars.ResourceEncounter,
	constvars.ResourceObservation,
	constvars.ResourceDiagnosticReport,
	constvars.ResourceMedication,
	constvars.ResourceMedicationRequest,
	constvars.ResourceCarePlan,
	constvars.ResourceCondition,
	constvars.ResourceProcedure,
	constvars.ResourceQuestionnaire,
	constvars.ResourceQuestionnaireResponse,
	constvars.ResourcePayment,
}

// attachResourceRoutes registers the five standard operations for every
// routed resource type. Each route declares its auth spec at registration so
// the registry can be validated against the permission matrix at startup.
// Deletes stay Admin-only at the route gate; the matrix governs the rest.
func attachResourceRoutes(router chi.Router, middlewares *middlewares.Middlewares, registry *access.RouteRegistry, controller *resources.ResourceController) {
	authenticatedRoles := []access.Role{
		access.RoleAdmin,
		access.RolePractitioner,
		access.RolePatient,
		access.RolePharmacist,
	}

	for _, resourceType := range routedResourceTypes {
		collectionPattern := "/" + resourceType
		itemPattern := collectionPattern + "/{resourceID}"

		searchSpec := registry.Register(constvars.MethodGet, collectionPattern,
			access.NewRouteSpec().Roles(authenticatedRoles...).Resource(resourceType, access.ActionSearch).Build())
		router.With(middlewares.Authorize(searchSpec)).Get(collectionPattern, controller.Search(resourceType))

		createSpec := registry.Register(constvars.MethodPost, collectionPattern,
			access.NewRouteSpec().Roles(authenticatedRoles...).Resource(resourceType, access.ActionCreate).Build())
		router.With(middlewares.Authorize(createSpec)).Post(collectionPattern, controller.Create(resourceType))

		readSpec := registry.Register(constvars.MethodGet, itemPattern,
			access.NewRouteSpec().Roles(authenticatedRoles...).Resource(resourceType, access.ActionRead).Build())
		router.With(middlewares.Authorize(readSpec)).Get(itemPattern, controller.FindByID(resourceType))

		updateSpec := registry.Register(constvars.MethodPut, itemPattern,
			access.NewRouteSpec().Roles(authenticatedRoles...).Resource(resourceType, access.ActionUpdate).Build())
		router.With(middlewares.Authorize(updateSpec)).Put(itemPattern, controller.Update(resourceType))

		deleteSpec := registry.Register(constvars.MethodDelete, itemPattern,
			access.NewRouteSpec().Roles(access.RoleAdmin).Resource(resourceType, access.ActionDelete).Build())
		router.With(middlewares.Authorize(deleteSpec)).Delete(itemPattern, controller.Delete(resourceType))
	}
}
