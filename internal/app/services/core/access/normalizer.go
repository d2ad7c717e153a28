package access

import (
	"clinigate-service/internal/pkg/constvars"
	"strings"
)

// NormalizeResourceID strips the storage prefix from a resource id so the
// prefixed and bare forms of the same logical id compare equal.
// normalize(normalize(x)) == normalize(x).
func NormalizeResourceID(id string) string {
	for strings.HasPrefix(id, constvars.ResourceIDPrefix) {
		id = strings.TrimPrefix(id, constvars.ResourceIDPrefix)
	}
	return id
}
