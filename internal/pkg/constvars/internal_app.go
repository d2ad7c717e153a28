package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
	CONTEXT_DECISION_KEY             ContextKey = "access_decision"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	ClinigateRoleAdmin        = "Admin"
	ClinigateRolePractitioner = "Practitioner"
	ClinigateRolePatient      = "Patient"
	ClinigateRolePharmacist   = "Pharmacist"
)

const (
	// ResourceIDPrefix is the storage-specific prefix some upstream systems
	// attach to logical resource ids. Stripped before any id comparison.
	ResourceIDPrefix = "res-"
)

const (
	APIKeySuperadminSubject = "api-key-superadmin"
)
