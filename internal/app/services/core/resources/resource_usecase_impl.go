package resources

import (
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"context"

	"go.uber.org/zap"
)

type resourceUsecase struct {
	StoreClient contracts.ResourceStoreClient
	Log         *zap.Logger
}

// NewResourceUsecase wires the pass-through to the resource store. The store
// is only ever reached with an allow decision already made; this layer's only
// own logic is honoring the decision's query mutation and direct-fetch
// degradation.
func NewResourceUsecase(storeClient contracts.ResourceStoreClient, log *zap.Logger) ResourceUsecase {
	return &resourceUsecase{
		StoreClient: storeClient,
		Log:         log,
	}
}

func (u *resourceUsecase) FindByID(ctx context.Context, resourceType, resourceID string) ([]byte, error) {
	return u.StoreClient.FindResourceByID(ctx, resourceType, resourceID)
}

// Search executes a list request. A decision carrying DirectResourceID
// degrades to a single-record fetch of the principal's own record; a decision
// carrying a mutated query replaces the caller's parameters with the scoped
// copy.
func (u *resourceUsecase) Search(ctx context.Context, resourceType string, decision *access.AccessDecision, query map[string]string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if decision != nil && decision.DirectResourceID != "" {
		u.Log.Info("resourceUsecase.Search degraded to direct fetch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
		)
		return u.StoreClient.FindResourceByID(ctx, resourceType, decision.DirectResourceID)
	}

	effectiveQuery := query
	if decision != nil && decision.MutatedQuery != nil {
		effectiveQuery = decision.MutatedQuery
	}
	return u.StoreClient.SearchResources(ctx, resourceType, effectiveQuery)
}

func (u *resourceUsecase) Create(ctx context.Context, resourceType string, body []byte) ([]byte, error) {
	return u.StoreClient.CreateResource(ctx, resourceType, body)
}

func (u *resourceUsecase) Update(ctx context.Context, resourceType, resourceID string, body []byte) ([]byte, error) {
	return u.StoreClient.UpdateResource(ctx, resourceType, resourceID, body)
}

func (u *resourceUsecase) Delete(ctx context.Context, resourceType, resourceID string) error {
	return u.StoreClient.DeleteResource(ctx, resourceType, resourceID)
}
