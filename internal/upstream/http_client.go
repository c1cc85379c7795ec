package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/domain"
	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

// Client calls the remote Yummy backend over HTTP. One client implements
// all collaborator interfaces; the backend exposes them as one API surface.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a backend client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// envelope is the backend's tagged success/failure wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewUpstreamUnavailable(method+" "+path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperrors.NewUpstreamUnavailable(method+" "+path, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		c.logger.Debug("upstream call rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return apperrors.NewUpstreamUnavailable(method+" "+path,
			fmt.Errorf("status %d: %s", resp.StatusCode, env.Message))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// RefreshSession exchanges a refresh token for fresh credentials.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	var result RefreshResult
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserByID fetches the full user record.
func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrderFull fetches the consolidated order context.
func (c *Client) GetOrderFull(ctx context.Context, orderID int64) (*domain.OrderFullContext, error) {
	var full domain.OrderFullContext
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d/full", orderID), nil, &full); err != nil {
		return nil, err
	}
	return &full, nil
}

// GetOrder fetches a single order.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderEvents fetches the order activity log.
func (c *Client) GetOrderEvents(ctx context.Context, orderID int64) ([]domain.OrderEvent, error) {
	var events []domain.OrderEvent
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d/events", orderID), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetKotUpdatesByOrder fetches kitchen tickets for an order.
func (c *Client) GetKotUpdatesByOrder(ctx context.Context, orderID int64) ([]domain.KOTUpdate, error) {
	var kots []domain.KOTUpdate
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/kot/order/%d", orderID), nil, &kots); err != nil {
		return nil, err
	}
	return kots, nil
}

// GetRestaurant fetches a restaurant profile.
func (c *Client) GetRestaurant(ctx context.Context, id int64) (*domain.RestaurantProfile, error) {
	var profile domain.RestaurantProfile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
