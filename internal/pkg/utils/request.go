package utils

import (
	"net/url"
)

// FlattenQueryParams keeps the first value of each query key. The gateway
// forwards single-valued FHIR search parameters; repeated keys are not part
// of its surface.
func FlattenQueryParams(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params
}
