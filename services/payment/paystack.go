// File: services/payment/paystack.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"streamafrica/utils"

	"go.uber.org/zap"
)

// CardGateway verifies a completed widget transaction server-side.
type CardGateway interface {
	VerifyTransaction(ctx context.Context, reference string) (*CardTransaction, error)
}

// CardTransaction is the subset of the verify response the funnel cares
// about.
type CardTransaction struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
}

type paystackResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    CardTransaction `json:"data"`
}

// PaystackClient talks to the Paystack REST API using the secret key.
type PaystackClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyTransaction fetches the gateway's view of a transaction. A
// non-success transaction status is reported through the returned data,
// not as an error; errors mean the gateway could not be consulted.
func (p *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*CardTransaction, error) {
	logger := utils.GetLogger().With(zap.String("reference", reference))

	endpoint, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", ErrGateway, err)
	}
	endpoint.Path, err = url.JoinPath(endpoint.Path, "transaction", "verify", reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Error("Paystack verify request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	var body paystackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed verify response: %v", ErrGateway, err)
	}
	if resp.StatusCode != http.StatusOK || !body.Status {
		logger.Warn("Paystack verify rejected",
			zap.Int("httpStatus", resp.StatusCode),
			zap.String("message", body.Message))
		return nil, fmt.Errorf("%w: %s", ErrGateway, body.Message)
	}
	return &body.Data, nil
}
