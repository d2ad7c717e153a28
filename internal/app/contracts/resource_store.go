package contracts

import (
	"context"
)

// ResourceStoreClient executes CRUD and search operations against the
// FHIR-compatible backend. It is invoked only after an allow decision, with
// either the original query parameters or the engine's mutated map.
type ResourceStoreClient interface {
	FindResourceByID(ctx context.Context, resourceType, resourceID string) ([]byte, error)
	SearchResources(ctx context.Context, resourceType string, query map[string]string) ([]byte, error)
	CreateResource(ctx context.Context, resourceType string, body []byte) ([]byte, error)
	UpdateResource(ctx context.Context, resourceType, resourceID string, body []byte) ([]byte, error)
	DeleteResource(ctx context.Context, resourceType, resourceID string) error
}
