// Package depositapi is the HTTP client for the remote deposit backend.
package depositapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/satheeshds/termdeposit/models"
)

// ErrUnavailable wraps calls rejected by the open circuit breaker.
var ErrUnavailable = errors.New("deposit service unavailable")

// Config holds the client settings. Zero values pick the defaults.
type Config struct {
	BaseURL    string
	Username   string
	Password   string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is an HTTP client for the deposit backend.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		token:      cfg.Token,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "deposit-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// isSuccessful keeps client-side rejections and cancellations from tripping
// the breaker.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var re *models.RemoteError
	return errors.As(err, &re) && re.StatusCode < http.StatusInternalServerError
}

// BreakerState reports the circuit breaker state for health checks.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// GetAccounts returns the customer's account catalog.
func (c *Client) GetAccounts(ctx context.Context) ([]models.Account, error) {
	var resp []accountDTO
	if err := c.get(ctx, "/accounts", &resp); err != nil {
		return nil, err
	}
	out := make([]models.Account, 0, len(resp))
	for _, a := range resp {
		acc, err := a.toModel()
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", a.AccountID, err)
		}
		out = append(out, acc)
	}
	return out, nil
}

// DealInquiry resolves a deal reference for a customer.
func (c *Client) DealInquiry(ctx context.Context, dealID, customerKey string) (models.DealRecord, error) {
	req := dealInquiryRequest{DealID: dealID, CustomerKey: customerKey}
	var resp dealInquiryResponse
	if err := c.post(ctx, "/deposit-requests/deal-inquiry", req, &resp); err != nil {
		return models.DealRecord{}, err
	}
	return resp.toModel()
}

// ValidateDeposit runs the backend checks on a payload without creating it.
func (c *Client) ValidateDeposit(ctx context.Context, payload models.DepositPayload) error {
	return c.post(ctx, "/deposit-requests/validate", newDepositRequest(payload), nil)
}

// RateInquiry quotes an ad-hoc deposit.
func (c *Client) RateInquiry(ctx context.Context, r models.RateInquiryRequest) (models.RatePreview, error) {
	req := rateInquiryRequest{
		DepositAmount: number(r.Amount),
		NumberOfDays:  r.NumberOfDays,
		Currency:      r.Currency,
		StartDate:     r.StartDate.String(),
	}
	var resp rateInquiryResponse
	if err := c.post(ctx, "/deposit-requests/rate-inquiry", req, &resp); err != nil {
		return models.RatePreview{}, err
	}
	return resp.toModel()
}

// CreateDeposit submits the deposit request.
func (c *Client) CreateDeposit(ctx context.Context, payload models.DepositPayload) (models.CreateResult, error) {
	var resp createDepositResponse
	if err := c.post(ctx, "/deposit-requests", newDepositRequest(payload), &resp); err != nil {
		return models.CreateResult{}, err
	}
	return models.CreateResult{Reference: resp.Reference, Status: resp.Status}, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(req, result)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("deposit api call rejected by circuit breaker", "path", req.URL.Path)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (c *Client) send(req *http.Request, result any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("deposit api call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && len(er.Errors) > 0 {
			return &models.RemoteError{StatusCode: resp.StatusCode, Errors: er.Errors}
		}
		return fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshaling response: %w", err)
		}
	}
	return nil
}
