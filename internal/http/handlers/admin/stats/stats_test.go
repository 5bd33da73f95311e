package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cod-analytics/backend/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServeHTTP(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Stats", mock.Anything).Return(&models.Stats{
			TotalUsers: 12,
			Subscriptions: map[string]int{
				models.StatusTrial:     5,
				models.StatusActive:    4,
				models.StatusCancelled: 2,
				models.StatusExpired:   1,
			},
		}, nil)

		rr := httptest.NewRecorder()
		New(noopLogger(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		assert.Equal(t, float64(12), data["total_users"])
		subs := data["subscriptions"].(map[string]any)
		assert.Equal(t, float64(5), subs[models.StatusTrial])
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Stats", mock.Anything).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		New(noopLogger(), svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
