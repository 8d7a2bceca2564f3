package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/passgate/passgate/internal/config"
	"go.uber.org/zap"
)

const (
	requestTimeout = 10 * time.Second
	verifyRetries  = 3
	verifyDelay    = time.Second
)

var (
	ErrNotConfigured        = errors.New("paystack_not_configured")
	ErrPaymentNotSuccessful = errors.New("payment_not_successful")
)

type Client struct {
	baseURL   string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:   cfg.PaystackBaseURL,
		secretKey: cfg.PaystackSecretKey,
		client: &http.Client{
			Timeout: requestTimeout,
		},
		log: log.Named("providers.paystack"),
	}
}

func (c *Client) Configured() bool {
	return c.secretKey != ""
}

type InitiateRequest struct {
	Email       string         `json:"email"`
	AmountMinor int64          `json:"amount"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type InitiateResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyData struct {
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	AmountMinor   int64  `json:"amount"`
	Currency      string `json:"currency"`
	Channel       string `json:"channel"`
	CustomerEmail string `json:"-"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initiate starts a hosted-checkout transaction and returns the
// authorization URL the buyer is redirected to.
func (c *Client) Initiate(ctx context.Context, req InitiateRequest) (InitiateResponse, error) {
	if !c.Configured() {
		return InitiateResponse{}, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return InitiateResponse{}, err
	}
	data, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return InitiateResponse{}, err
	}

	var out InitiateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return InitiateResponse{}, err
	}
	return out, nil
}

// Verify confirms a transaction by reference. Transport-level failures are
// retried a few times; a settled-but-unsuccessful payment is terminal.
func (c *Client) Verify(ctx context.Context, reference string) (VerifyData, error) {
	if !c.Configured() {
		return VerifyData{}, ErrNotConfigured
	}

	var lastErr error
	for attempt := 1; attempt <= verifyRetries; attempt++ {
		data, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
		if err != nil {
			if !isTransient(err) {
				return VerifyData{}, err
			}
			lastErr = err
			c.log.Warn("verify attempt failed",
				zap.String("reference", reference),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return VerifyData{}, ctx.Err()
			case <-time.After(verifyDelay):
			}
			continue
		}

		var out struct {
			VerifyData
			Customer struct {
				Email string `json:"email"`
			} `json:"customer"`
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return VerifyData{}, err
		}
		result := out.VerifyData
		result.CustomerEmail = out.Customer.Email
		if result.Status != "success" {
			return result, ErrPaymentNotSuccessful
		}
		return result, nil
	}
	return VerifyData{}, fmt.Errorf("verify %s: %w", reference, lastErr)
}

type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &transientError{err: err}
	}
	if resp.StatusCode >= 500 {
		return nil, &transientError{err: fmt.Errorf("paystack: status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("paystack: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Status {
		return nil, fmt.Errorf("paystack: %s (status %d)", env.Message, resp.StatusCode)
	}
	return env.Data, nil
}
