package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lorencia/portal/internal/adapter"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// eventPayPalCaptureCompleted is the only PayPal event type that credits
// an account. Everything else is acknowledged and ignored.
const eventPayPalCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

// Checkout is the provider handoff returned to the browser after a
// transaction has been opened.
type Checkout struct {
	TransactionID int64  `json:"transactionId"`
	PaymentID     string `json:"paymentId"`
	RedirectURL   string `json:"redirectUrl"`
}

// PayPalWebhookEvent is the decoded webhook body. The handler verifies the
// transmission signature over the raw bytes before decoding into this.
type PayPalWebhookEvent struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID       string `json:"id"`
		CustomID string `json:"custom_id"`
		Amount   struct {
			Value string `json:"value"`
		} `json:"amount"`
		SupplementaryData struct {
			RelatedIDs struct {
				OrderID string `json:"order_id"`
			} `json:"related_ids"`
		} `json:"supplementary_data"`
	} `json:"resource"`
}

// paymentService is the concrete implementation of PaymentService.
//
// Crediting is keyed on the pending-to-completed transition of the
// transaction row: CompleteTransaction only matches a pending row, so a
// redelivered webhook finds the row already completed and acknowledges
// without touching the balance.
type paymentService struct {
	userRepository        store.UserRepository
	transactionRepository store.TransactionRepository

	paypal      adapter.PayPalClient
	mercadopago adapter.MercadoPagoClient

	site   *siteconfig.Store
	email  EmailSender
	logger *logger.Logger
}

func NewPaymentService(users store.UserRepository, transactions store.TransactionRepository, paypal adapter.PayPalClient, mercadopago adapter.MercadoPagoClient, site *siteconfig.Store, email EmailSender, logger *logger.Logger) PaymentService {
	return &paymentService{
		userRepository:        users,
		transactionRepository: transactions,
		paypal:                paypal,
		mercadopago:           mercadopago,
		site:                  site,
		email:                 email,
		logger:                logger,
	}
}

// CreateCheckout opens a pending transaction for the chosen package and
// hands it to the provider. The provider-side id is stored on the
// transaction so the webhook can find it later.
//
// Returns ErrUnknownCreditPackage for an id not in the site config and
// ErrPaymentMethodNotAvailable when the admin has the method turned off.
func (p *paymentService) CreateCheckout(ctx context.Context, user models.User, packageID, method string) (Checkout, error) {
	log := logger.FromContext(ctx)

	credits := p.site.Snapshot().Credits

	pkg, ok := credits.Package(packageID)
	if !ok {
		return Checkout{}, ErrUnknownCreditPackage
	}

	switch method {
	case models.PaymentMethodPayPal:
		if !credits.PaymentMethods.PayPal {
			return Checkout{}, ErrPaymentMethodNotAvailable
		}
	case models.PaymentMethodMercadoPago:
		if !credits.PaymentMethods.MercadoPago {
			return Checkout{}, ErrPaymentMethodNotAvailable
		}
	default:
		return Checkout{}, ErrPaymentMethodNotAvailable
	}

	tx, err := p.transactionRepository.CreateTransaction(ctx, models.Transaction{
		UserID:        user.ID,
		Amount:        pkg.Price,
		Credits:       pkg.Credits,
		PaymentMethod: method,
		Status:        models.TransactionPending,
	})
	if err != nil {
		log.Err(err).Int64("userID", user.ID).Str("package", packageID).Msg("transaction creation failed")
		return Checkout{}, fmt.Errorf("transaction creation failed: %w", err)
	}

	var checkout Checkout
	switch method {
	case models.PaymentMethodPayPal:
		order, err := p.paypal.CreateOrder(ctx, tx.ID, user.ID, pkg.Credits, pkg.Price)
		if err != nil {
			log.Err(err).Int64("transactionID", tx.ID).Msg("paypal order creation failed")
			return Checkout{}, fmt.Errorf("paypal order creation failed: %w", err)
		}
		checkout = Checkout{TransactionID: tx.ID, PaymentID: order.ID, RedirectURL: order.ApproveURL}
	case models.PaymentMethodMercadoPago:
		pref, err := p.mercadopago.CreatePreference(ctx, tx.ID, pkg.Credits, pkg.Price)
		if err != nil {
			log.Err(err).Int64("transactionID", tx.ID).Msg("mercadopago preference creation failed")
			return Checkout{}, fmt.Errorf("mercadopago preference creation failed: %w", err)
		}
		checkout = Checkout{TransactionID: tx.ID, PaymentID: pref.ID, RedirectURL: pref.InitPoint}
	}

	if err := p.transactionRepository.SetPaymentID(ctx, tx.ID, checkout.PaymentID); err != nil {
		log.Err(err).Int64("transactionID", tx.ID).Msg("payment reference update failed")
		return Checkout{}, fmt.Errorf("payment reference update failed: %w", err)
	}

	log.Info().
		Int64("transactionID", tx.ID).
		Str("method", method).
		Str("package", packageID).
		Msg("checkout opened")

	return checkout, nil
}

// VerifyPayPalSignature checks the webhook transmission signature over the
// raw request body. No store access happens here.
func (p *paymentService) VerifyPayPalSignature(body []byte, transmissionID, timestamp, signature string) bool {
	return p.paypal.VerifyWebhookSignature(body, transmissionID, timestamp, signature)
}

// ProcessPayPalWebhook handles a verified PayPal event. Only capture
// completions are processed; the transaction is located by the capture id
// or, failing that, by the originating order id.
func (p *paymentService) ProcessPayPalWebhook(ctx context.Context, event PayPalWebhookEvent) error {
	log := logger.FromContext(ctx)

	if event.EventType != eventPayPalCaptureCompleted {
		log.Debug().Str("eventType", event.EventType).Msg("paypal event ignored")
		return nil
	}

	amount, err := strconv.ParseFloat(event.Resource.Amount.Value, 64)
	if err != nil {
		log.Err(err).Str("value", event.Resource.Amount.Value).Msg("paypal amount is not a number")
		return fmt.Errorf("%w: bad capture amount", ErrInvalidDataProvided)
	}

	tx, err := p.transactionRepository.FindTransactionByPaymentID(ctx, models.PaymentMethodPayPal, event.Resource.ID)
	if err != nil && event.Resource.SupplementaryData.RelatedIDs.OrderID != "" {
		tx, err = p.transactionRepository.FindTransactionByPaymentID(ctx, models.PaymentMethodPayPal, event.Resource.SupplementaryData.RelatedIDs.OrderID)
	}
	if err != nil {
		log.Err(err).Str("paymentID", event.Resource.ID).Msg("paypal transaction lookup failed")
		return fmt.Errorf("paypal transaction lookup failed: %w", err)
	}

	credits := int64(amount * p.site.Snapshot().Credits.CreditsPerUnit)

	return p.settle(ctx, tx, event.Resource.ID, credits, amount)
}

// ProcessMercadoPagoNotification handles a payment notification. The
// payment is fetched back from the provider API and only an approved
// status settles the referenced transaction.
func (p *paymentService) ProcessMercadoPagoNotification(ctx context.Context, notificationType, paymentID string) error {
	log := logger.FromContext(ctx)

	if notificationType != "payment" {
		log.Debug().Str("type", notificationType).Msg("mercadopago notification ignored")
		return nil
	}

	payment, err := p.mercadopago.GetPayment(ctx, paymentID)
	if err != nil {
		log.Err(err).Str("paymentID", paymentID).Msg("mercadopago payment fetch failed")
		return fmt.Errorf("mercadopago payment fetch failed: %w", err)
	}

	if payment.Status != "approved" {
		log.Debug().Str("paymentID", paymentID).Str("status", payment.Status).Msg("mercadopago payment not approved")
		return nil
	}

	transactionID, err := strconv.ParseInt(payment.ExternalReference, 10, 64)
	if err != nil {
		log.Err(err).Str("externalReference", payment.ExternalReference).Msg("mercadopago external reference is not a transaction id")
		return fmt.Errorf("%w: bad external reference", ErrInvalidDataProvided)
	}

	tx, err := p.transactionRepository.FindTransactionByID(ctx, transactionID)
	if err != nil {
		log.Err(err).Int64("transactionID", transactionID).Msg("mercadopago transaction lookup failed")
		return fmt.Errorf("mercadopago transaction lookup failed: %w", err)
	}

	return p.settle(ctx, tx, payment.ID, tx.Credits, tx.Amount)
}

// settle moves the transaction to completed and credits the account.
// Only the goroutine that wins the pending-to-completed update credits;
// redeliveries see ErrTransactionNotPending and acknowledge silently.
func (p *paymentService) settle(ctx context.Context, tx models.Transaction, paymentID string, credits int64, amount float64) error {
	log := logger.FromContext(ctx)

	completed, err := p.transactionRepository.CompleteTransaction(ctx, tx.ID, paymentID)
	if err != nil {
		if errors.Is(err, store.ErrTransactionNotPending) {
			log.Info().Int64("transactionID", tx.ID).Msg("transaction already settled, skipping")
			return nil
		}
		log.Err(err).Int64("transactionID", tx.ID).Msg("transaction completion failed")
		return fmt.Errorf("transaction completion failed: %w", err)
	}

	balance, err := p.userRepository.AddCredits(ctx, completed.UserID, credits)
	if err != nil {
		log.Err(err).Int64("transactionID", tx.ID).Int64("userID", completed.UserID).Msg("crediting failed")
		return fmt.Errorf("crediting failed: %w", err)
	}

	log.Info().
		Int64("transactionID", tx.ID).
		Int64("userID", completed.UserID).
		Int64("credits", credits).
		Int64("balance", balance).
		Msg("payment settled")

	user, err := p.userRepository.FindUserByID(ctx, completed.UserID)
	if err != nil {
		log.Err(err).Int64("userID", completed.UserID).Msg("user lookup for confirmation mail failed")
		return nil
	}
	p.email.SendPaymentConfirmation(ctx, user.Email, user.Username, credits, amount)

	return nil
}
