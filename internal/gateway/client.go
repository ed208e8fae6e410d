// Package gateway is the typed client for the donation backend's REST
// API. It owns everything wire-level: bearer-token injection, envelope
// and foreign-key normalization, and classification of failures into
// the authentication / authorization / availability buckets the rest
// of the console reacts to.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"console/internal/domain"
)

// ErrMissingBaseURL indicates the client was configured without a
// backend address.
var ErrMissingBaseURL = errors.New("gateway: base url is required")

// TokenSource supplies the current bearer token and receives the
// teardown signal when the backend rejects it.
type TokenSource interface {
	Token() string
	Invalidate()
}

// Scope selects the breadth of a donation fetch.
type Scope string

const (
	// ScopeMine fetches the caller's own donations.
	ScopeMine Scope = "mine"
	// ScopeAll fetches every donation. Admin-gated by the backend.
	ScopeAll Scope = "all"
)

// DonationQuery carries the optional server-side filters for the admin
// donation listing. The backend may or may not honor them, so callers
// must still filter client-side.
type DonationQuery struct {
	Status string
	Type   string
	Method string
}

// Options configures the backend client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	Tokens         TokenSource
}

// Client performs HTTP calls to the donation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	tokens     TokenSource
}

// NewClient constructs a client with sane defaults and injected
// dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
		tokens:     opts.Tokens,
	}, nil
}

// StatusError is a non-2xx backend response. It matches the domain
// sentinels through errors.Is so callers never switch on raw status
// codes.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway: status %d", e.StatusCode)
}

// Is maps status classes onto the domain sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login authenticates against the external auth service. Accounts that
// have not completed email verification are rejected before any
// session is created.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", domain.User{}, err
	}
	if !resp.User.Verified {
		return "", domain.User{}, domain.ErrNotVerified
	}
	return resp.Token, resp.User, nil
}

type refreshResponse struct {
	User domain.User `json:"user"`
}

// RefreshSession re-fetches the caller's profile, used after profile
// updates to keep the session's role current.
func (c *Client) RefreshSession(ctx context.Context) (domain.User, error) {
	var resp refreshResponse
	if err := c.do(ctx, http.MethodGet, "/auth/refresh", nil, nil, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// Campaigns fetches every campaign.
func (c *Client) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/campaign/getAll", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCampaignList(raw)
}

// CampaignByID fetches a single campaign.
func (c *Client) CampaignByID(ctx context.Context, id string) (domain.Campaign, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/campaign/getsingle/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.Campaign{}, err
	}
	return decodeCampaign(raw)
}

// CampaignDraft is the create/update payload for a campaign.
type CampaignDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goalAmount"`
	Deadline    string  `json:"deadline"`
}

// CreateCampaign creates a campaign. Admin only; the backend enforces
// it, the console gates it earlier.
func (c *Client) CreateCampaign(ctx context.Context, draft CampaignDraft) error {
	return c.do(ctx, http.MethodPost, "/campaign/create", nil, draft, nil)
}

// UpdateCampaign updates a campaign.
func (c *Client) UpdateCampaign(ctx context.Context, id string, draft CampaignDraft) error {
	return c.do(ctx, http.MethodPut, "/campaign/update/"+url.PathEscape(id), nil, draft, nil)
}

// DeleteCampaign deletes a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/campaign/delete/"+url.PathEscape(id), nil, nil, nil)
}

// DonationDraft is the create payload for a donation.
type DonationDraft struct {
	CampaignID string  `json:"campaignId"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"donationType"`
	Method     string  `json:"paymentMethod"`
	Category   string  `json:"campaign"`
}

// CreateDonation submits a donation.
func (c *Client) CreateDonation(ctx context.Context, draft DonationDraft) error {
	return c.do(ctx, http.MethodPost, "/donation/createDonation", nil, draft, nil)
}

// Donations fetches a donation collection. ScopeMine hits the caller's
// own listing; ScopeAll hits the admin listing and passes the optional
// query filters through.
func (c *Client) Donations(ctx context.Context, scope Scope, q DonationQuery) ([]domain.Donation, error) {
	path := "/donation/getMyDonation"
	var query url.Values
	if scope == ScopeAll {
		path = "/donation/admin"
		query = url.Values{}
		if q.Status != "" {
			query.Set("status", q.Status)
		}
		if q.Type != "" {
			query.Set("donationType", q.Type)
		}
		if q.Method != "" {
			query.Set("paymentMethod", q.Method)
		}
	}
	raw, err := c.doRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeDonationList(raw)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// SetDonationStatus verifies or rejects a donation.
func (c *Client) SetDonationStatus(ctx context.Context, id string, status domain.DonationStatus) error {
	return c.do(ctx, http.MethodPut, "/donation/update/"+url.PathEscape(id), nil, statusUpdateRequest{Status: string(status)}, nil)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures classify with server failures: the
		// backend is unreachable either way.
		return nil, fmt.Errorf("gateway: %s %s: %w (%v)", method, path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil {
			statusErr.Code = detail.Code
			if detail.Message != "" {
				statusErr.Message = detail.Message
			} else {
				statusErr.Message = detail.Error
			}
		}
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			// The backend no longer accepts the token. Tear the
			// session down before reporting upward so every view
			// sees the Anonymous state.
			c.tokens.Invalidate()
		}
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("backend request failed")
		return nil, statusErr
	}

	return raw, nil
}
