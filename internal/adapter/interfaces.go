// Package adapter implements the outbound HTTP clients for the supported
// payment providers. Both clients are thin resty wrappers around the
// providers' REST APIs; webhook signature verification for PayPal also
// lives here because it is part of the provider contract, not of the
// portal's business logic.
package adapter

import "context"

// PayPalOrder is the provider-side order created at checkout initiation.
type PayPalOrder struct {
	// ID is the PayPal order id, stored as the transaction's payment
	// reference until the capture webhook arrives.
	ID string

	// ApproveURL is where the buyer is redirected to approve the payment.
	ApproveURL string
}

// PayPalClient talks to the PayPal REST API and verifies webhook signatures.
type PayPalClient interface {
	// CreateOrder creates a capture-intent order for the given checkout.
	CreateOrder(ctx context.Context, transactionID, userID int64, credits int64, amount float64) (PayPalOrder, error)

	// VerifyWebhookSignature checks the transmission signature of an inbound
	// webhook over the raw request body.
	VerifyWebhookSignature(body []byte, transmissionID, timestamp, signature string) bool
}

// MercadoPagoPreference is the provider-side checkout preference.
type MercadoPagoPreference struct {
	// ID is the preference id, stored as the transaction's payment
	// reference until the payment notification arrives.
	ID string

	// InitPoint is where the buyer is redirected to pay.
	InitPoint string
}

// MercadoPagoPayment is the payment detail fetched when a notification
// arrives. ExternalReference carries the portal transaction id.
type MercadoPagoPayment struct {
	ID                string
	Status            string
	ExternalReference string
	TransactionAmount float64
}

// MercadoPagoClient talks to the MercadoPago REST API.
type MercadoPagoClient interface {
	// CreatePreference creates a checkout preference for the given checkout.
	CreatePreference(ctx context.Context, transactionID int64, credits int64, amount float64) (MercadoPagoPreference, error)

	// GetPayment fetches the full payment details for a notification.
	GetPayment(ctx context.Context, paymentID string) (MercadoPagoPayment, error)
}
