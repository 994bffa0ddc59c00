package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lorencia/portal/internal/config"
	"github.com/lorencia/portal/internal/logger"
)

type mercadopagoClient struct {
	client        *resty.Client
	logger        *logger.Logger
	returnBaseURL string
}

// NewMercadoPagoClient constructs a [MercadoPagoClient] authenticating with
// the configured access token.
func NewMercadoPagoClient(cfg config.Payments, logger *logger.Logger) MercadoPagoClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.MercadoPago.BaseURL, "/")).
		SetAuthToken(cfg.MercadoPago.AccessToken).
		SetTimeout(15 * time.Second)

	return &mercadopagoClient{
		client:        cli,
		logger:        logger,
		returnBaseURL: strings.TrimRight(cfg.ReturnBaseURL, "/"),
	}
}

type mercadopagoPreferenceRequest struct {
	Items []struct {
		Title      string  `json:"title"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unit_price"`
		CurrencyID string  `json:"currency_id"`
	} `json:"items"`
	ExternalReference string `json:"external_reference"`
	BackURLs          struct {
		Success string `json:"success"`
		Failure string `json:"failure"`
		Pending string `json:"pending"`
	} `json:"back_urls"`
	AutoReturn          string `json:"auto_return"`
	StatementDescriptor string `json:"statement_descriptor"`
}

type mercadopagoPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// CreatePreference creates a checkout preference whose external_reference
// carries the portal transaction id, and returns the preference id and the
// buyer redirect URL.
func (m *mercadopagoClient) CreatePreference(ctx context.Context, transactionID int64, credits int64, amount float64) (MercadoPagoPreference, error) {
	var body mercadopagoPreferenceRequest
	body.Items = append(body.Items, struct {
		Title      string  `json:"title"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unit_price"`
		CurrencyID string  `json:"currency_id"`
	}{
		Title:      fmt.Sprintf("%d credits for Lorencia MMORPG", credits),
		Quantity:   1,
		UnitPrice:  amount,
		CurrencyID: "BRL",
	})
	body.ExternalReference = strconv.FormatInt(transactionID, 10)
	body.BackURLs.Success = m.returnBaseURL + "/dashboard/credits/success"
	body.BackURLs.Failure = m.returnBaseURL + "/dashboard/credits/cancel"
	body.BackURLs.Pending = m.returnBaseURL + "/dashboard/credits/pending"
	body.AutoReturn = "approved"
	body.StatementDescriptor = "LORENCIA MMORPG"

	var prefResp mercadopagoPreferenceResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&prefResp).
		Post("/checkout/preferences")
	if err != nil {
		return MercadoPagoPreference{}, fmt.Errorf("mercadopago preference request: %w", err)
	}
	if resp.IsError() {
		m.logger.Error().Int("status", resp.StatusCode()).Msg("mercadopago preference rejected")
		return MercadoPagoPreference{}, fmt.Errorf("%w: mercadopago preference status %d", ErrProviderRequestFailed, resp.StatusCode())
	}

	return MercadoPagoPreference{ID: prefResp.ID, InitPoint: prefResp.InitPoint}, nil
}

type mercadopagoPaymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
	TransactionAmount float64     `json:"transaction_amount"`
}

// GetPayment fetches the full payment details for a webhook notification.
// The notification body carries only the payment id; everything else must
// be read back from the provider before it can be trusted.
func (m *mercadopagoClient) GetPayment(ctx context.Context, paymentID string) (MercadoPagoPayment, error) {
	var payResp mercadopagoPaymentResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetResult(&payResp).
		Get("/v1/payments/" + paymentID)
	if err != nil {
		return MercadoPagoPayment{}, fmt.Errorf("mercadopago payment request: %w", err)
	}
	if resp.IsError() {
		m.logger.Error().Int("status", resp.StatusCode()).Str("payment_id", paymentID).Msg("mercadopago payment fetch rejected")
		return MercadoPagoPayment{}, fmt.Errorf("%w: mercadopago payment status %d", ErrProviderRequestFailed, resp.StatusCode())
	}

	return MercadoPagoPayment{
		ID:                payResp.ID.String(),
		Status:            payResp.Status,
		ExternalReference: payResp.ExternalReference,
		TransactionAmount: payResp.TransactionAmount,
	}, nil
}
