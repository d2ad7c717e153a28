package fhirstore

import (
	"bytes"
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"
)

var (
	resourceStoreClientInstance contracts.ResourceStoreClient
	onceResourceStoreClient     sync.Once
)

type resourceStoreFhirClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewResourceStoreFhirClient(baseUrl string, logger *zap.Logger) contracts.ResourceStoreClient {
	onceResourceStoreClient.Do(func() {
		client := &resourceStoreFhirClient{
			BaseUrl: baseUrl,
			Log:     logger,
		}
		resourceStoreClientInstance = client
	})
	return resourceStoreClientInstance
}

func (c *resourceStoreFhirClient) FindResourceByID(ctx context.Context, resourceType, resourceID string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("resourceStoreFhirClient.FindResourceByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	endpoint := fmt.Sprintf("%s%s/%s", c.BaseUrl, resourceType, url.PathEscape(resourceID))
	return c.do(ctx, constvars.MethodGet, endpoint, nil, constvars.StatusOK, resourceType)
}

func (c *resourceStoreFhirClient) SearchResources(ctx context.Context, resourceType string, query map[string]string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("resourceStoreFhirClient.SearchResources called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	endpoint := fmt.Sprintf("%s%s", c.BaseUrl, resourceType)
	if encoded := values.Encode(); encoded != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, encoded)
	}
	return c.do(ctx, constvars.MethodGet, endpoint, nil, constvars.StatusOK, resourceType)
}

func (c *resourceStoreFhirClient) CreateResource(ctx context.Context, resourceType string, body []byte) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("resourceStoreFhirClient.CreateResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	endpoint := fmt.Sprintf("%s%s", c.BaseUrl, resourceType)
	return c.do(ctx, constvars.MethodPost, endpoint, body, constvars.StatusCreated, resourceType)
}

func (c *resourceStoreFhirClient) UpdateResource(ctx context.Context, resourceType, resourceID string, body []byte) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("resourceStoreFhirClient.UpdateResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	endpoint := fmt.Sprintf("%s%s/%s", c.BaseUrl, resourceType, url.PathEscape(resourceID))
	return c.do(ctx, constvars.MethodPut, endpoint, body, constvars.StatusOK, resourceType)
}

func (c *resourceStoreFhirClient) DeleteResource(ctx context.Context, resourceType, resourceID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("resourceStoreFhirClient.DeleteResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	endpoint := fmt.Sprintf("%s%s/%s", c.BaseUrl, resourceType, url.PathEscape(resourceID))
	_, err := c.do(ctx, constvars.MethodDelete, endpoint, nil, constvars.StatusNoContent, resourceType)
	return err
}

func (c *resourceStoreFhirClient) do(ctx context.Context, method, endpoint string, body []byte, wantStatus int, resourceType string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.Log.Error("resourceStoreFhirClient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("resourceStoreFhirClient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("resourceStoreFhirClient error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode != wantStatus && resp.StatusCode != constvars.StatusOK {
		c.Log.Error("resourceStoreFhirClient unexpected upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
		)
		return nil, exceptions.ErrFHIRStoreBadStatus(fmt.Errorf("status %d", resp.StatusCode), resourceType)
	}

	return respBody, nil
}
