package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lorencia/portal/internal/config"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/utils"
)

// ErrProviderRequestFailed is returned when a provider API call completes
// but the provider answers with a non-2xx status.
var ErrProviderRequestFailed = fmt.Errorf("payment provider request failed")

type paypalClient struct {
	client *resty.Client
	cfg    config.PayPal
	logger *logger.Logger

	// returnBaseURL is prepended to the buyer return/cancel paths.
	returnBaseURL string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient constructs a [PayPalClient] for the configured API host.
func NewPayPalClient(cfg config.Payments, logger *logger.Logger) PayPalClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.PayPal.BaseURL, "/")).
		SetTimeout(15 * time.Second)

	return &paypalClient{
		client:        cli,
		cfg:           cfg.PayPal,
		logger:        logger,
		returnBaseURL: strings.TrimRight(cfg.ReturnBaseURL, "/"),
	}
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken returns a cached OAuth access token, refreshing it through
// the client-credentials grant when missing or about to expire.
func (p *paypalClient) getAccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Add(time.Minute).Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	var tokenResp paypalTokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.cfg.ClientID, p.cfg.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&tokenResp).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("paypal token request: %w", err)
	}
	if resp.IsError() {
		p.logger.Error().Int("status", resp.StatusCode()).Msg("paypal token request rejected")
		return "", fmt.Errorf("%w: paypal oauth status %d", ErrProviderRequestFailed, resp.StatusCode())
	}

	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return p.accessToken, nil
}

type paypalOrderRequest struct {
	Intent             string               `json:"intent"`
	PurchaseUnits      []paypalPurchaseUnit `json:"purchase_units"`
	ApplicationContext paypalAppContext     `json:"application_context"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id"`
	CustomID    string       `json:"custom_id"`
	Description string       `json:"description"`
	Amount      paypalAmount `json:"amount"`
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalAppContext struct {
	BrandName   string `json:"brand_name"`
	LandingPage string `json:"landing_page"`
	UserAction  string `json:"user_action"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
}

type paypalOrderResponse struct {
	ID    string `json:"id"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateOrder creates a capture-intent order carrying the portal transaction
// id as reference_id and the buyer's user id as custom_id, and returns the
// order id together with the buyer approval link.
func (p *paypalClient) CreateOrder(ctx context.Context, transactionID, userID int64, credits int64, amount float64) (PayPalOrder, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return PayPalOrder{}, err
	}

	body := paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{{
			ReferenceID: strconv.FormatInt(transactionID, 10),
			CustomID:    strconv.FormatInt(userID, 10),
			Description: fmt.Sprintf("%d credits for Lorencia MMORPG", credits),
			Amount: paypalAmount{
				CurrencyCode: "BRL",
				Value:        fmt.Sprintf("%.2f", amount),
			},
		}},
		ApplicationContext: paypalAppContext{
			BrandName:   "Lorencia MMORPG",
			LandingPage: "BILLING",
			UserAction:  "PAY_NOW",
			ReturnURL:   p.returnBaseURL + "/dashboard/credits/success",
			CancelURL:   p.returnBaseURL + "/dashboard/credits/cancel",
		},
	}

	var orderResp paypalOrderResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&orderResp).
		Post("/v2/checkout/orders")
	if err != nil {
		return PayPalOrder{}, fmt.Errorf("paypal create order request: %w", err)
	}
	if resp.IsError() {
		p.logger.Error().Int("status", resp.StatusCode()).Msg("paypal create order rejected")
		return PayPalOrder{}, fmt.Errorf("%w: paypal order status %d", ErrProviderRequestFailed, resp.StatusCode())
	}

	for _, link := range orderResp.Links {
		if link.Rel == "approve" {
			return PayPalOrder{ID: orderResp.ID, ApproveURL: link.Href}, nil
		}
	}

	return PayPalOrder{}, fmt.Errorf("%w: paypal order %s has no approve link", ErrProviderRequestFailed, orderResp.ID)
}

// VerifyWebhookSignature recomputes the transmission signature over
// "transmissionID|timestamp|webhookID|sha256hex(body)" with the shared
// webhook secret and compares it to the provided header value in constant
// time.
func (p *paypalClient) VerifyWebhookSignature(body []byte, transmissionID, timestamp, signature string) bool {
	data := fmt.Sprintf("%s|%s|%s|%s", transmissionID, timestamp, p.cfg.WebhookID, utils.SHA256Hex(body))
	expected := utils.HMACBase64(data, p.cfg.WebhookSecret)
	return utils.HMACEqual(expected, signature)
}
