package resources

import (
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"clinigate-service/internal/pkg/utils"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ResourceController struct {
	ResourceUsecase ResourceUsecase
	Log             *zap.Logger
}

func NewResourceController(resourceUsecase ResourceUsecase, log *zap.Logger) *ResourceController {
	return &ResourceController{
		ResourceUsecase: resourceUsecase,
		Log:             log,
	}
}

func (c *ResourceController) FindByID(resourceType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := chi.URLParam(r, "resourceID")
		body, err := c.ResourceUsecase.FindByID(r.Context(), resourceType, resourceID)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, err)
			return
		}
		utils.BuildRawResponse(w, constvars.StatusOK, constvars.MIMEApplicationFHIRJSON, body)
	}
}

func (c *ResourceController) Search(resourceType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision, _ := r.Context().Value(constvars.CONTEXT_DECISION_KEY).(*access.AccessDecision)
		query := utils.FlattenQueryParams(r.URL.Query())

		body, err := c.ResourceUsecase.Search(r.Context(), resourceType, decision, query)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, err)
			return
		}
		utils.BuildRawResponse(w, constvars.StatusOK, constvars.MIMEApplicationFHIRJSON, body)
	}
}

func (c *ResourceController) Create(resourceType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		created, err := c.ResourceUsecase.Create(r.Context(), resourceType, body)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, err)
			return
		}
		utils.BuildRawResponse(w, constvars.StatusCreated, constvars.MIMEApplicationFHIRJSON, created)
	}
}

func (c *ResourceController) Update(resourceType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := chi.URLParam(r, "resourceID")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		updated, err := c.ResourceUsecase.Update(r.Context(), resourceType, resourceID, body)
		if err != nil {
			utils.BuildErrorResponse(c.Log, w, err)
			return
		}
		utils.BuildRawResponse(w, constvars.StatusOK, constvars.MIMEApplicationFHIRJSON, updated)
	}
}

func (c *ResourceController) Delete(resourceType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := chi.URLParam(r, "resourceID")
		if err := c.ResourceUsecase.Delete(r.Context(), resourceType, resourceID); err != nil {
			utils.BuildErrorResponse(c.Log, w, err)
			return
		}
		w.WriteHeader(constvars.StatusNoContent)
	}
}
