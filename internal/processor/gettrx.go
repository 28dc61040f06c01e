package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rentpay-service/config"

	"go.uber.org/zap"
)

// Client is a thin HTTP client for the GETTRX payment API. Every call
// attaches the configured secret key and an onBehalfOf header naming the
// merchant account the request acts for. No retries, no circuit breaking;
// failures are returned to the caller as-is.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Processor = (*Client)(nil)

func NewClient(cfg config.GettrxConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Configured reports whether processor credentials are present. Without a
// secret key the opportunistic merchant verification is skipped entirely.
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/payments/v1/accounts/%s", c.baseURL, url.PathEscape(accountID))

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, accountID, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to parse account response: %w", err)
	}

	return &account, nil
}

func (c *Client) CreatePaymentRequest(ctx context.Context, req *PaymentRequest, onBehalfOf string) (*PaymentRequestResponse, error) {
	endpoint := c.baseURL + "/payments/v1/payment-requests"

	body, err := c.doRequest(ctx, http.MethodPost, endpoint, onBehalfOf, req)
	if err != nil {
		return nil, err
	}

	var response PaymentRequestResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse payment request response: %w", err)
	}
	response.Raw = body

	return &response, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint, onBehalfOf string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("secretKey", c.secretKey)
	req.Header.Set("onBehalfOf", onBehalfOf)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gettrx request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gettrx response: %w", err)
	}

	c.logger.Debug("gettrx request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    parseErrorMessage(body),
		}
	}

	return body, nil
}

// parseErrorMessage pulls the human-readable detail out of a GETTRX error
// body. The API uses "message" but some endpoints answer with "error".
func parseErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
