package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sntracker/backend/internal/handlers"
	"github.com/sntracker/backend/test/helpers"
	"github.com/sntracker/backend/test/mocks"
)

func newHealthRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestHealthHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("healthy", func(t *testing.T) {
		database := mocks.NewMockDatabase(ctrl)
		database.EXPECT().Ping(gomock.Any()).Return(nil)
		database.EXPECT().Health(gomock.Any()).Return(map[string]interface{}{
			"total_conns": 5,
		})

		handler := handlers.NewHealthHandler(database, newHealthRedis(t), nil, helpers.LoadTestConfig(), helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var status handlers.HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "healthy", status.Services["database"].Status)
		assert.Equal(t, "healthy", status.Services["redis"].Status)
		assert.NotContains(t, status.Services, "asynq")
	})

	t.Run("degraded_when_database_down", func(t *testing.T) {
		database := mocks.NewMockDatabase(ctrl)
		database.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		handler := handlers.NewHealthHandler(database, newHealthRedis(t), nil, helpers.LoadTestConfig(), helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var status handlers.HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "degraded", status.Status)
		assert.Equal(t, "unhealthy", status.Services["database"].Status)
	})
}

func TestHealthHandler_Readiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	database := mocks.NewMockDatabase(ctrl)
	database.EXPECT().Ping(gomock.Any()).Return(nil)

	handler := handlers.NewHealthHandler(database, newHealthRedis(t), nil, helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.Readiness(w, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready":true`)
}
