package access

import (
	"clinigate-service/internal/pkg/constvars"
)

// subjectScopeParams maps resource types to the search parameter that
// references the owning patient. Types without an entry use "subject".
var subjectScopeParams = map[string]string{
	constvars.ResourcePayment: constvars.SearchParamPatient,
}

// QueryScopeBuilder injects principal-scoping filters into search requests
// that carry no explicit resource id. It never mutates the caller's map and
// never overwrites a key the caller already supplied.
type QueryScopeBuilder struct{}

func NewQueryScopeBuilder() *QueryScopeBuilder {
	return &QueryScopeBuilder{}
}

// BuildScope returns a scoped copy of the query parameters. A non-empty
// directID means the search degrades to a single-record fetch of that id.
func (b *QueryScopeBuilder) BuildScope(principal *Principal, resourceType string, query map[string]string) (scoped map[string]string, directID string) {
	scoped = make(map[string]string, len(query)+1)
	for key, value := range query {
		scoped[key] = value
	}

	linkedID := NormalizeResourceID(principal.LinkedResourceID)

	switch principal.Role {
	case RolePatient:
		if resourceType == constvars.ResourcePatient {
			return scoped, linkedID
		}
		addIfAbsent(scoped, subjectParamFor(resourceType), linkedID)
	case RolePractitioner:
		if resourceType == constvars.ResourcePatient {
			addIfAbsent(scoped, constvars.SearchParamGeneralPractitioner, linkedID)
		}
	}

	return scoped, ""
}

func subjectParamFor(resourceType string) string {
	if param, ok := subjectScopeParams[resourceType]; ok {
		return param
	}
	return constvars.SearchParamSubject
}

func addIfAbsent(query map[string]string, key, value string) {
	if _, ok := query[key]; !ok {
		query[key] = value
	}
}
