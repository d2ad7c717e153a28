package middlewares

import (
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"clinigate-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuth authenticates operational callers by the x-api-key header. Only
// the hash of the superadmin key is configured; a matching key yields an
// Admin principal, a present but wrong key ends the request.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderXAPIKey)

		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if m.InternalConfig.App.SuperadminAPIKeyHash == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(m.InternalConfig.App.SuperadminAPIKeyHash), []byte(apiKey)); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(err))
			return
		}

		principal := &access.Principal{
			SubjectID: constvars.APIKeySuperadminSubject,
			Role:      access.RoleAdmin,
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH_KEY, true)
		ctx = context.WithValue(ctx, constvars.CONTEXT_PRINCIPAL_KEY, principal)

		m.Log.Info("API key authentication successful",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingUserAgentKey, r.UserAgent()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
