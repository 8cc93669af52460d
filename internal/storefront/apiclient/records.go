package apiclient

import (
	"context"
	"net/http"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
)

// RecordClient talks to one record collection. Enquiries and orders share
// every call except the status update, which uses a different verb and path.
type RecordClient struct {
	client       *Client
	kind         domain.RecordKind
	base         string
	statusMethod string
	statusPath   func(id string) string
}

func (c *Client) Enquiries() *RecordClient {
	return &RecordClient{
		client:       c,
		kind:         domain.KindEnquiry,
		base:         "/enquire",
		statusMethod: http.MethodPatch,
		statusPath:   func(id string) string { return "/enquire/" + escape(id) + "/status" },
	}
}

func (c *Client) Orders() *RecordClient {
	return &RecordClient{
		client:       c,
		kind:         domain.KindOrder,
		base:         "/orders",
		statusMethod: http.MethodPut,
		statusPath:   func(id string) string { return "/orders/" + escape(id) },
	}
}

func (rc *RecordClient) Kind() domain.RecordKind {
	return rc.kind
}

func (rc *RecordClient) Submit(ctx context.Context, token string, state domain.CartState) (*domain.Record, error) {
	var record domain.Record
	req := dto.SubmitRequest{CartItems: state}
	if err := rc.client.do(ctx, "submit "+string(rc.kind), http.MethodPost, rc.base, token, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (rc *RecordClient) List(ctx context.Context, token string) ([]domain.Record, error) {
	records := []domain.Record{}
	if err := rc.client.do(ctx, "list "+string(rc.kind), http.MethodGet, rc.base, token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (rc *RecordClient) ListForUser(ctx context.Context, token, userID string) ([]domain.Record, error) {
	records := []domain.Record{}
	path := rc.base + "/userid/" + escape(userID)
	if err := rc.client.do(ctx, "list user "+string(rc.kind), http.MethodGet, path, token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (rc *RecordClient) Get(ctx context.Context, token, id string) (*domain.Record, error) {
	var record domain.Record
	if err := rc.client.do(ctx, "get "+string(rc.kind), http.MethodGet, rc.base+"/"+escape(id), token, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (rc *RecordClient) SetStatus(ctx context.Context, token, id string, status domain.Status) (*domain.Record, error) {
	var record domain.Record
	req := dto.StatusRequest{Status: status}
	if err := rc.client.do(ctx, "set "+string(rc.kind)+" status", rc.statusMethod, rc.statusPath(id), token, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) OrderHealth(ctx context.Context) (*dto.HealthResponse, error) {
	var health dto.HealthResponse
	if err := c.do(ctx, "order health", http.MethodGet, "/orders/health", "", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
