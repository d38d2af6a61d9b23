package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/models"
)

// envelope is the fixed response wrapper every backend endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// RESTClient implements Client over HTTP+JSON.
type RESTClient struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// NewRESTClient builds a client for the given endpoint base
// (e.g. "http://localhost:3000/api"). The timeout bounds each request
// end to end; idle-session timing is handled elsewhere.
func NewRESTClient(base string, timeout time.Duration, log zerolog.Logger) (*RESTClient, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint base %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint base %q: scheme and host required", base)
	}
	return &RESTClient{
		base: u.String(),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request and decodes the envelope. body (when non-nil) is
// JSON-encoded; on success the envelope's data field is unmarshalled into
// out (when non-nil).
func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).
			Msg("transport failure")
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// No envelope at all; fall back on the status line.
		return &BackendError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("request_id", reqID).
			Str("error", env.Error).Msg("backend rejected request")
		return &BackendError{Status: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

var _ Client = (*RESTClient)(nil)

func esc(s string) string { return url.PathEscape(s) }

// --- users ---

func (c *RESTClient) RegisterUser(ctx context.Context, user *models.User) error {
	return c.do(ctx, http.MethodPost, "/users", user, nil)
}

func (c *RESTClient) GetUser(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+esc(email), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, email string, user *models.User) error {
	return c.do(ctx, http.MethodPut, "/users/"+esc(email), user, nil)
}

func (c *RESTClient) GetUserWithGuests(ctx context.Context, email string) (*models.User, []models.Guest, error) {
	var payload struct {
		models.User
		Guests []models.Guest `json:"guests"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+esc(email)+"/guests", nil, &payload); err != nil {
		return nil, nil, err
	}
	return &payload.User, payload.Guests, nil
}

// --- guests ---

func (c *RESTClient) CreateGuest(ctx context.Context, guest *models.Guest) error {
	return c.do(ctx, http.MethodPost, "/guests", guest, nil)
}

func (c *RESTClient) UpdateGuest(ctx context.Context, name, number string, guest *models.Guest) error {
	return c.do(ctx, http.MethodPut, "/guests/"+esc(name)+"/"+esc(number), guest, nil)
}

func (c *RESTClient) DeleteGuest(ctx context.Context, name, number string) error {
	return c.do(ctx, http.MethodDelete, "/guests/"+esc(name)+"/"+esc(number), nil, nil)
}

func (c *RESTClient) GuestsByUser(ctx context.Context, email string) ([]models.Guest, error) {
	var guests []models.Guest
	if err := c.do(ctx, http.MethodGet, "/guests/user/"+esc(email), nil, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// --- items ---

func (c *RESTClient) Items(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) ClaimedItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items/claimed", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) UnclaimedItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items/unclaimed", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RESTClient) CreateItem(ctx context.Context, item *models.Item) error {
	return c.do(ctx, http.MethodPost, "/items", item, nil)
}

func (c *RESTClient) DeleteItem(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+esc(name), nil, nil)
}

func (c *RESTClient) ClaimItem(ctx context.Context, itemName string, req *ClaimRequest) error {
	return c.do(ctx, http.MethodPost, "/items/"+esc(itemName)+"/claim", req, nil)
}

func (c *RESTClient) UnclaimItem(ctx context.Context, itemName string) error {
	return c.do(ctx, http.MethodPost, "/items/"+esc(itemName)+"/unclaim", nil, nil)
}

// --- claims ---

func (c *RESTClient) Claims(ctx context.Context) ([]models.Claim, error) {
	var claims []models.Claim
	if err := c.do(ctx, http.MethodGet, "/claims", nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *RESTClient) ClaimsByGuest(ctx context.Context, name, number string) ([]models.Claim, error) {
	var claims []models.Claim
	if err := c.do(ctx, http.MethodGet, "/claims/guest/"+esc(name)+"/"+esc(number), nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *RESTClient) ClaimsByItem(ctx context.Context, itemName string) ([]models.Claim, error) {
	var claims []models.Claim
	if err := c.do(ctx, http.MethodGet, "/claims/item/"+esc(itemName), nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *RESTClient) CreateClaim(ctx context.Context, claim *models.Claim) error {
	return c.do(ctx, http.MethodPost, "/claims", claim, nil)
}

func (c *RESTClient) UpdateClaim(ctx context.Context, name, number, itemName string, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.do(ctx, http.MethodPut, "/claims/"+esc(name)+"/"+esc(number)+"/"+esc(itemName), body, nil)
}

func (c *RESTClient) DeleteClaim(ctx context.Context, name, number, itemName string) error {
	return c.do(ctx, http.MethodDelete, "/claims/"+esc(name)+"/"+esc(number)+"/"+esc(itemName), nil, nil)
}

func (c *RESTClient) DeleteClaimsByGuest(ctx context.Context, name, number string) error {
	return c.do(ctx, http.MethodDelete, "/claims/guest/"+esc(name)+"/"+esc(number), nil, nil)
}

func (c *RESTClient) DeleteClaimsByItem(ctx context.Context, itemName string) error {
	return c.do(ctx, http.MethodDelete, "/claims/item/"+esc(itemName), nil, nil)
}
