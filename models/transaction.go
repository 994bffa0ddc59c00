package models

import "time"

// Transaction statuses. A transaction is created as pending at checkout
// initiation and transitions to completed exactly once via a provider
// webhook. There is no reverse transition.
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
	TransactionRefunded  = "refunded"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodPayPal      = "paypal"
	PaymentMethodMercadoPago = "mercadopago"
)

// Transaction records a single credits purchase.
type Transaction struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	// Amount is the price paid in the shop currency.
	Amount float64 `json:"amount"`

	// Credits is the number of credits granted when the transaction completes.
	Credits int64 `json:"credits"`

	// PaymentMethod is one of the PaymentMethod* constants.
	PaymentMethod string `json:"payment_method"`

	// PaymentID is the provider-side reference (PayPal order id or
	// MercadoPago payment id). Set at checkout initiation, may be replaced
	// by the webhook with the final provider payment id.
	PaymentID string `json:"payment_id"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}
