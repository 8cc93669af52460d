package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockPinger struct {
	PingContextFunc func(ctx context.Context) error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.PingContextFunc(ctx)
}

func TestHandleHealth_Up(t *testing.T) {
	ctrl := NewHealthController(&mockPinger{
		PingContextFunc: func(ctx context.Context) error { return nil },
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/orders/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","database":"up"}}`, rec.Body.String())
}

func TestHandleHealth_Down(t *testing.T) {
	ctrl := NewHealthController(&mockPinger{
		PingContextFunc: func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/orders/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"down"`)
}
