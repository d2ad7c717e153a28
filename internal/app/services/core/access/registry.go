package access

import (
	"clinigate-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type RegisteredRoute struct {
	Method  string
	Pattern string
	Spec    RouteAuthSpec
}

// RouteRegistry collects the RouteAuthSpec declared next to each route at
// registration time. Populated during startup wiring, read-only afterwards.
type RouteRegistry struct {
	routes []RegisteredRoute
}

func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{}
}

func (r *RouteRegistry) Register(method, pattern string, spec RouteAuthSpec) RouteAuthSpec {
	r.routes = append(r.routes, RegisteredRoute{Method: method, Pattern: pattern, Spec: spec})
	return spec
}

func (r *RouteRegistry) Routes() []RegisteredRoute {
	routes := make([]RegisteredRoute, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// ValidateAgainstMatrix warns about routes that declare a resource type the
// matrix has no entry for. Such routes deny at request time; surfacing them
// at startup keeps the misconfiguration out of production traffic.
func (r *RouteRegistry) ValidateAgainstMatrix(matrix *PermissionMatrix, log *zap.Logger) {
	for _, route := range r.routes {
		if route.Spec.ResourceType == "" {
			continue
		}
		if !matrix.KnownResourceType(route.Spec.ResourceType) {
			log.Warn("registered route declares a resource type the permission matrix does not know",
				zap.String(constvars.LoggingMethodKey, route.Method),
				zap.String(constvars.LoggingEndpointKey, route.Pattern),
				zap.String(constvars.LoggingResourceTypeKey, route.Spec.ResourceType),
			)
		}
	}
}
