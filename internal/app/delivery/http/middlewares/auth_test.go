package middlewares

import (
	"clinigate-service/internal/app/config"
	"clinigate-service/internal/app/models"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAuthSecret = "test-secret-key-for-unit-tests-only-0001"

type recordingAuditUsecase struct {
	records []*models.AccessDecisionRecord
}

func (u *recordingAuditUsecase) RecordDecision(ctx context.Context, record *models.AccessDecisionRecord) error {
	u.records = append(u.records, record)
	return nil
}

func newTestMiddlewares(t *testing.T, auditUsecase *recordingAuditUsecase) *Middlewares {
	t.Helper()
	matrix, err := access.NewPermissionMatrix()
	require.NoError(t, err)

	engine := access.NewAccessDecisionEngine(
		access.NewJWTPrincipalAuthenticator(testAuthSecret),
		matrix,
		access.NewOwnershipValidator(),
		access.NewQueryScopeBuilder(),
		zap.NewNop(),
	)

	return &Middlewares{
		Log:            zap.NewNop(),
		Engine:         engine,
		AuditUsecase:   auditUsecase,
		InternalConfig: &config.InternalConfig{},
	}
}

func signAuthToken(t *testing.T, role, fhirID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "user-1",
		"role":    role,
		"fhir_id": fhirID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testAuthSecret))
	require.NoError(t, err)
	return constvars.BearerTokenPrefix + signed
}

func TestAuthorize(t *testing.T) {
	allRoles := []access.Role{access.RoleAdmin, access.RolePractitioner, access.RolePatient, access.RolePharmacist}

	newRouter := func(middlewares *Middlewares, spec access.RouteAuthSpec, method, pattern string, handler http.HandlerFunc) *chi.Mux {
		router := chi.NewRouter()
		router.With(middlewares.Authorize(spec)).Method(method, pattern, handler)
		return router
	}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed request reaches the handler with decision in context", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(allRoles...).Resource(constvars.ResourceObservation, access.ActionSearch).Build()
		router := newRouter(middlewares, spec, "GET", "/fhir/Observation", func(w http.ResponseWriter, r *http.Request) {
			decision, ok := r.Context().Value(constvars.CONTEXT_DECISION_KEY).(*access.AccessDecision)
			require.True(t, ok, "decision should be in the handler context")
			assert.Equal(t, "p1", decision.MutatedQuery[constvars.SearchParamSubject], "scoped query should reach the handler")

			principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*access.Principal)
			require.True(t, ok, "principal should be in the handler context")
			assert.Equal(t, access.RolePatient, principal.Role)

			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/fhir/Observation?status=final", nil)
		req.Header.Set(constvars.HeaderAuthorization, signAuthToken(t, "patient", "p1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, audit.records, 1, "every evaluated request gets one audit record")
		assert.True(t, audit.records[0].Allowed)
		assert.Equal(t, string(access.ReasonPermitted), audit.records[0].Reason)
	})

	t.Run("missing credential denies with a generic response", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(allRoles...).Resource(constvars.ResourcePatient, access.ActionRead).Build()
		router := newRouter(middlewares, spec, "GET", "/fhir/Patient/{resourceID}", okHandler)

		req := httptest.NewRequest("GET", "/fhir/Patient/p1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Len(t, audit.records, 1)
		assert.Equal(t, string(access.ReasonUnauthenticated), audit.records[0].Reason)
	})

	t.Run("another patient's record denies forbidden", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(allRoles...).Resource(constvars.ResourcePatient, access.ActionRead).Build()
		router := newRouter(middlewares, spec, "GET", "/fhir/Patient/{resourceID}", okHandler)

		req := httptest.NewRequest("GET", "/fhir/Patient/p2", nil)
		req.Header.Set(constvars.HeaderAuthorization, signAuthToken(t, "patient", "p1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "denials surface as a generic forbidden response")
		require.Len(t, audit.records, 1)
		assert.Equal(t, string(access.ReasonOwnershipDenied), audit.records[0].Reason)
		assert.Equal(t, "p2", audit.records[0].ResourceID)
	})

	t.Run("api key principal skips token authentication", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(access.RoleAdmin).Resource(constvars.ResourcePatient, access.ActionDelete).Build()
		router := chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal := &access.Principal{SubjectID: constvars.APIKeySuperadminSubject, Role: access.RoleAdmin}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)))
			})
		})
		router.With(middlewares.Authorize(spec)).Delete("/fhir/Patient/{resourceID}", okHandler)

		req := httptest.NewRequest("DELETE", "/fhir/Patient/p1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "a context principal should be decided without a token")
		require.Len(t, audit.records, 1)
		assert.Equal(t, string(access.ReasonAdminOverride), audit.records[0].Reason)
	})

	t.Run("write body referencing another patient is rejected", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(allRoles...).Resource(constvars.ResourceQuestionnaireResponse, access.ActionCreate).Build()
		router := newRouter(middlewares, spec, "POST", "/fhir/QuestionnaireResponse", okHandler)

		body := `{"resourceType":"QuestionnaireResponse","subject":{"reference":"Patient/p2"}}`
		req := httptest.NewRequest("POST", "/fhir/QuestionnaireResponse", strings.NewReader(body))
		req.Header.Set(constvars.HeaderAuthorization, signAuthToken(t, "patient", "p1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "a write naming another patient's record must be rejected")
	})

	t.Run("write body referencing the caller's own record passes", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Roles(allRoles...).Resource(constvars.ResourceQuestionnaireResponse, access.ActionCreate).Build()

		var seenBody string
		router := newRouter(middlewares, spec, "POST", "/fhir/QuestionnaireResponse", func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, 1024)
			n, _ := r.Body.Read(buf)
			seenBody = string(buf[:n])
			w.WriteHeader(http.StatusCreated)
		})

		body := `{"resourceType":"QuestionnaireResponse","subject":{"reference":"Patient/p1"}}`
		req := httptest.NewRequest("POST", "/fhir/QuestionnaireResponse", strings.NewReader(body))
		req.Header.Set(constvars.HeaderAuthorization, signAuthToken(t, "patient", "p1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, body, seenBody, "the body must be replayable after the guard reads it")
	})

	t.Run("open route allows without credentials and without audit principal", func(t *testing.T) {
		audit := &recordingAuditUsecase{}
		middlewares := newTestMiddlewares(t, audit)

		spec := access.NewRouteSpec().Build()
		router := newRouter(middlewares, spec, "GET", "/health", okHandler)

		req := httptest.NewRequest("GET", "/health", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, audit.records, 1)
		assert.Equal(t, string(access.ReasonOpenRoute), audit.records[0].Reason)
		assert.Empty(t, audit.records[0].SubjectID, "open routes carry no principal")
	})
}

func TestValidateReferencesInBody(t *testing.T) {
	t.Run("matching subject reference", func(t *testing.T) {
		body := []byte(`{"subject":{"reference":"Patient/p1"}}`)
		assert.NoError(t, validateReferencesInBody(body, constvars.ResourcePatient, "p1"))
	})

	t.Run("mismatched subject reference", func(t *testing.T) {
		body := []byte(`{"subject":{"reference":"Patient/p2"}}`)
		assert.Error(t, validateReferencesInBody(body, constvars.ResourcePatient, "p1"))
	})

	t.Run("prefixed linked id normalizes before comparing", func(t *testing.T) {
		body := []byte(`{"subject":{"reference":"Patient/p1"}}`)
		assert.NoError(t, validateReferencesInBody(body, constvars.ResourcePatient, "res-p1"))
	})

	t.Run("mismatched performer reference", func(t *testing.T) {
		body := []byte(`{"performer":[{"reference":"Patient/p2"}]}`)
		assert.Error(t, validateReferencesInBody(body, constvars.ResourcePatient, "p1"))
	})

	t.Run("mismatched actor reference", func(t *testing.T) {
		body := []byte(`{"actor":[{"reference":"Practitioner/d9"}]}`)
		assert.Error(t, validateReferencesInBody(body, constvars.ResourcePractitioner, "d1"))
	})

	t.Run("references of other types are ignored", func(t *testing.T) {
		body := []byte(`{"subject":{"reference":"Group/g1"},"performer":[{"reference":"Organization/o1"}]}`)
		assert.NoError(t, validateReferencesInBody(body, constvars.ResourcePatient, "p1"))
	})

	t.Run("body without references", func(t *testing.T) {
		body := []byte(`{"resourceType":"QuestionnaireResponse"}`)
		assert.NoError(t, validateReferencesInBody(body, constvars.ResourcePatient, "p1"))
	})
}
