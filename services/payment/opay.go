// File: services/payment/opay.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"streamafrica/utils"

	"go.uber.org/zap"
)

// opaySuccessCode is the only acceptance code the cashier create API
// returns on success.
const opaySuccessCode = "00000"

// CashierClient creates a hosted cashier checkout and returns its URL.
type CashierClient interface {
	CreateCashier(ctx context.Context, req *CashierRequest) (string, error)
}

// CashierRequest mirrors the cashier create payload. Amounts are in minor
// units (kobo).
type CashierRequest struct {
	Country     string          `json:"country"`
	Reference   string          `json:"reference"`
	Amount      CashierAmount   `json:"amount"`
	ReturnURL   string          `json:"returnUrl"`
	CallbackURL string          `json:"callbackUrl"`
	CancelURL   string          `json:"cancelUrl"`
	ExpireAt    int             `json:"expireAt"`
	UserInfo    CashierUserInfo `json:"userInfo"`
	Product     CashierProduct  `json:"product"`
	PayMethod   string          `json:"payMethod"`
}

type CashierAmount struct {
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type CashierUserInfo struct {
	UserEmail  string `json:"userEmail"`
	UserMobile string `json:"userMobile"`
	UserName   string `json:"userName"`
	UserID     string `json:"userId"`
}

type CashierProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type cashierResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		CashierURL string `json:"cashierUrl"`
		Reference  string `json:"reference"`
		OrderNo    string `json:"orderNo"`
	} `json:"data"`
}

// OpayClient talks to the OPay international cashier API. The create call
// authenticates with the public key; only the callback signature (handled
// out-of-band) uses the private key.
type OpayClient struct {
	apiURL     string
	publicKey  string
	merchantID string
	client     *http.Client
}

func NewOpayClient(apiURL, publicKey, merchantID string) *OpayClient {
	return &OpayClient{
		apiURL:     apiURL,
		publicKey:  publicKey,
		merchantID: merchantID,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCashier posts the checkout request and returns the hosted cashier
// URL. Any transport failure or non-"00000" code surfaces as a gateway
// error; the caller shows it and does not retry.
func (o *OpayClient) CreateCashier(ctx context.Context, req *CashierRequest) (string, error) {
	logger := utils.GetLogger().With(zap.String("reference", req.Reference))

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.publicKey)
	httpReq.Header.Set("MerchantId", o.merchantID)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		logger.Error("OPay cashier request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	var body cashierResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed cashier response: %v", ErrGateway, err)
	}
	if body.Code != opaySuccessCode || body.Data.CashierURL == "" {
		logger.Warn("OPay cashier create rejected",
			zap.String("code", body.Code),
			zap.String("message", body.Message))
		return "", fmt.Errorf("%w: %s", ErrGateway, body.Message)
	}
	return body.Data.CashierURL, nil
}
