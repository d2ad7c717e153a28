package resources

import (
	"clinigate-service/internal/app/services/core/access"
	"context"
)

type ResourceUsecase interface {
	FindByID(ctx context.Context, resourceType, resourceID string) ([]byte, error)
	Search(ctx context.Context, resourceType string, decision *access.AccessDecision, query map[string]string) ([]byte, error)
	Create(ctx context.Context, resourceType string, body []byte) ([]byte, error)
	Update(ctx context.Context, resourceType, resourceID string, body []byte) ([]byte, error)
	Delete(ctx context.Context, resourceType, resourceID string) error
}
