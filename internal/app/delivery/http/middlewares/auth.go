package middlewares

import (
	"bytes"
	"clinigate-service/internal/app/models"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"clinigate-service/internal/pkg/utils"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Authorize evaluates the route's auth spec against the caller before the
// handler runs. Resource writes additionally get their body checked for
// references to other principals' records. The decision lands in the request
// context so handlers can honor query scoping.
func (m *Middlewares) Authorize(spec access.RouteAuthSpec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resourceID := chi.URLParam(r, "resourceID")
			query := utils.FlattenQueryParams(r.URL.Query())

			var decision *access.AccessDecision
			var principal *access.Principal

			// An API key principal is placed in the context upstream and
			// skips token authentication.
			if p, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*access.Principal); ok && p != nil {
				principal = p
				decision = m.Engine.Decide(r.Context(), &access.AccessRequest{
					Principal:  principal,
					Spec:       spec,
					ResourceID: resourceID,
					Query:      query,
				})
			} else {
				decision, principal = m.Engine.Evaluate(r.Context(), r.Header.Get(constvars.HeaderAuthorization), spec, resourceID, query)
			}

			m.recordDecision(r, principal, spec, resourceID, decision)

			if !decision.Allowed {
				utils.BuildErrorResponse(m.Log, w, denialError(decision.Reason))
				return
			}

			if principal != nil && (spec.Action == access.ActionCreate || spec.Action == access.ActionUpdate) {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					utils.BuildErrorResponse(m.Log, w, exceptions.ErrCannotParseJSON(err))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if err := m.validateOwnershipInBody(principal, body); err != nil {
					m.Log.Warn("request body references another principal's records",
						zap.String(constvars.LoggingSubjectIDKey, principal.SubjectID),
						zap.String(constvars.LoggingRoleKey, string(principal.Role)),
						zap.String(constvars.LoggingResourceTypeKey, spec.ResourceType),
						zap.Error(err),
					)
					utils.BuildErrorResponse(m.Log, w, exceptions.ErrOwnershipDenied(err))
					return
				}
			}

			ctx := r.Context()
			if principal != nil {
				ctx = context.WithValue(ctx, constvars.CONTEXT_PRINCIPAL_KEY, principal)
			}
			ctx = context.WithValue(ctx, constvars.CONTEXT_DECISION_KEY, decision)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middlewares) recordDecision(r *http.Request, principal *access.Principal, spec access.RouteAuthSpec, resourceID string, decision *access.AccessDecision) {
	if m.AuditUsecase == nil {
		return
	}

	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	record := &models.AccessDecisionRecord{
		RequestID:    requestID,
		ResourceType: spec.ResourceType,
		ResourceID:   resourceID,
		Action:       string(spec.Action),
		Allowed:      decision.Allowed,
		Reason:       string(decision.Reason),
		EvaluatedAt:  time.Now().UTC(),
	}
	if principal != nil {
		record.SubjectID = principal.SubjectID
		record.Role = string(principal.Role)
	}

	if err := m.AuditUsecase.RecordDecision(r.Context(), record); err != nil {
		m.Log.Error("failed to record access decision",
			zap.Any(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

// validateOwnershipInBody rejects write payloads whose subject, performer or
// actor references point at a record the principal is not linked to.
func (m *Middlewares) validateOwnershipInBody(principal *access.Principal, body []byte) error {
	switch principal.Role {
	case access.RolePatient:
		return validateReferencesInBody(body, constvars.ResourcePatient, principal.LinkedResourceID)
	case access.RolePractitioner:
		return validateReferencesInBody(body, constvars.ResourcePractitioner, principal.LinkedResourceID)
	default:
		return nil
	}
}

func validateReferencesInBody(body []byte, linkedType, linkedID string) error {
	wantID := access.NormalizeResourceID(linkedID)
	prefix := linkedType + "/"

	if subject := gjson.GetBytes(body, "subject.reference").String(); subject != "" {
		if strings.HasPrefix(subject, prefix) {
			subjectID := strings.TrimPrefix(subject, prefix)
			if access.NormalizeResourceID(subjectID) != wantID {
				return fmt.Errorf("subject reference %s does not match the caller's %s record", subject, strings.ToLower(linkedType))
			}
		}
	}

	for _, performer := range gjson.GetBytes(body, "performer").Array() {
		if ref := performer.Get("reference").String(); strings.HasPrefix(ref, prefix) {
			performerID := strings.TrimPrefix(ref, prefix)
			if access.NormalizeResourceID(performerID) != wantID {
				return fmt.Errorf("performer reference %s does not match the caller's %s record", ref, strings.ToLower(linkedType))
			}
		}
	}

	for _, actor := range gjson.GetBytes(body, "actor").Array() {
		if ref := actor.Get("reference").String(); strings.HasPrefix(ref, prefix) {
			actorID := strings.TrimPrefix(ref, prefix)
			if access.NormalizeResourceID(actorID) != wantID {
				return fmt.Errorf("actor reference %s does not match the caller's %s record", ref, strings.ToLower(linkedType))
			}
		}
	}

	return nil
}
