package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingSubjectIDKey    = "subject_id"
	LoggingRoleKey         = "role"
	LoggingResourceTypeKey = "resource_type"
	LoggingResourceIDKey   = "resource_id"
	LoggingActionKey       = "action"
	LoggingReasonKey       = "reason"
)
