package middlewares

import (
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/exceptions"
)

func denialError(reason access.DecisionReason) *exceptions.CustomError {
	switch reason {
	case access.ReasonUnauthenticated:
		return exceptions.ErrTokenInvalidOrExpired(nil)
	case access.ReasonRoleMismatch:
		return exceptions.ErrRoleMismatch(nil)
	case access.ReasonOwnershipDenied:
		return exceptions.ErrOwnershipDenied(nil)
	case access.ReasonRoleResourceActionDenied:
		return exceptions.ErrRoleResourceActionDenied(nil)
	case access.ReasonMisconfiguredRoute:
		return exceptions.ErrMisconfiguredRoute(nil)
	default:
		return exceptions.ErrRoleResourceActionDenied(nil)
	}
}
