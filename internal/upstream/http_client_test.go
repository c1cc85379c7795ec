package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

func TestClient_GetOrderDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": 42, "status": "OPEN", "grand_total": 135.5},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zap.NewNop())
	order, err := client.GetOrder(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, "OPEN", order.Status)
	assert.Equal(t, 135.5, order.GrandTotal)
}

func TestClient_TaggedFailureBecomesDomainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "order not found",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zap.NewNop())
	_, err := client.GetOrder(context.Background(), 42)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
	assert.Contains(t, domainErr.Error(), "order not found")
}

func TestClient_RefreshSessionPostsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "the-refresh-token", body["refresh_token"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"access_token":  "new-access",
				"refresh_token": "new-refresh",
				"user":          map[string]any{"id": "u1", "roles": []string{"manager"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zap.NewNop())
	result, err := client.RefreshSession(context.Background(), "the-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "new-access", result.AccessToken)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, []string{"manager"}, result.User.Roles)
}

func TestClient_NetworkErrorWraps(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())
	_, err := client.GetKotUpdatesByOrder(context.Background(), 1)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
}
