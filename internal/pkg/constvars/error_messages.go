package constvars

// Client-facing messages. Authorization denials intentionally share one
// generic message so matrix and ownership internals never leak to callers.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientServerLongRespond             = "server took too long to respond"
)

// Developer messages, kept in server-side logs only.
const (
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthClaimsMissing         = "token claims missing or malformed"
	ErrDevAuthRoleUnknown           = "role doesn't exist on the system"
	ErrDevAuthRoleMismatch          = "role not in route's required set"
	ErrDevAuthOwnershipDenied       = "resource does not belong to principal"
	ErrDevAuthActionDenied          = "role/resource/action denied by permission matrix"
	ErrDevAuthMisconfiguredRoute    = "route declares a resource type with no matrix entry"
	ErrDevInvalidAPIKey             = "invalid api key"

	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevFHIRStoreBadStatus     = "fhir store returned non-success status"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"

	ErrDevDBFailedToInsertDocument = "failed to insert document to database"
	ErrDevDBFailedToFindDocument   = "failed to find document in database"
	ErrDevRedisFailedToSetData     = "failed to set data to redis"
	ErrDevRedisFailedToGetData     = "failed to get data from redis"
	ErrDevQueuePublishFailed       = "failed to publish message to queue"
)
