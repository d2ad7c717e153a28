package resources

import (
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/pkg/constvars"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResourceStoreClient struct {
	findResourceType   string
	findResourceID     string
	searchResourceType string
	searchQuery        map[string]string
}

func (c *fakeResourceStoreClient) FindResourceByID(ctx context.Context, resourceType, resourceID string) ([]byte, error) {
	c.findResourceType = resourceType
	c.findResourceID = resourceID
	return []byte(`{"resourceType":"` + resourceType + `"}`), nil
}

func (c *fakeResourceStoreClient) SearchResources(ctx context.Context, resourceType string, query map[string]string) ([]byte, error) {
	c.searchResourceType = resourceType
	c.searchQuery = query
	return []byte(`{"resourceType":"Bundle"}`), nil
}

func (c *fakeResourceStoreClient) CreateResource(ctx context.Context, resourceType string, body []byte) ([]byte, error) {
	return body, nil
}

func (c *fakeResourceStoreClient) UpdateResource(ctx context.Context, resourceType, resourceID string, body []byte) ([]byte, error) {
	return body, nil
}

func (c *fakeResourceStoreClient) DeleteResource(ctx context.Context, resourceType, resourceID string) error {
	return nil
}

func TestResourceUsecaseSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("direct resource id degrades to a single fetch", func(t *testing.T) {
		store := &fakeResourceStoreClient{}
		usecase := NewResourceUsecase(store, zap.NewNop())

		decision := &access.AccessDecision{
			Allowed:          true,
			Reason:           access.ReasonPermitted,
			DirectResourceID: "p1",
		}

		body, err := usecase.Search(ctx, constvars.ResourcePatient, decision, map[string]string{"name": "smith"})
		require.NoError(t, err)
		assert.Equal(t, "p1", store.findResourceID, "the direct id should be fetched instead of searching")
		assert.Empty(t, store.searchResourceType, "no search should reach the store")
		assert.NotEmpty(t, body)
	})

	t.Run("mutated query replaces the caller's parameters", func(t *testing.T) {
		store := &fakeResourceStoreClient{}
		usecase := NewResourceUsecase(store, zap.NewNop())

		decision := &access.AccessDecision{
			Allowed:      true,
			Reason:       access.ReasonPermitted,
			MutatedQuery: map[string]string{"subject": "p1", "status": "final"},
		}

		_, err := usecase.Search(ctx, constvars.ResourceObservation, decision, map[string]string{"status": "final"})
		require.NoError(t, err)
		assert.Equal(t, decision.MutatedQuery, store.searchQuery, "the scoped copy should reach the store")
	})

	t.Run("decision without scoping passes the original query", func(t *testing.T) {
		store := &fakeResourceStoreClient{}
		usecase := NewResourceUsecase(store, zap.NewNop())

		query := map[string]string{"code": "1234-5"}
		_, err := usecase.Search(ctx, constvars.ResourceObservation, &access.AccessDecision{Allowed: true, Reason: access.ReasonAdminOverride}, query)
		require.NoError(t, err)
		assert.Equal(t, query, store.searchQuery, "unscoped decisions forward the caller's query untouched")
	})
}
