package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/service"
	"github.com/lorencia/portal/internal/utils"
)

// PayPal webhook signature headers.
const (
	paypalTransmissionIDHeader   = "Paypal-Transmission-Id"
	paypalTransmissionTimeHeader = "Paypal-Transmission-Time"
	paypalTransmissionSigHeader  = "Paypal-Transmission-Sig"
)

type createPaymentRequest struct {
	PackageID string `json:"packageId"`
	Method    string `json:"method"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	checkout, err := h.services.PaymentService.CreateCheckout(ctx, user, req.PackageID, req.Method)
	if err != nil {
		h.respondError(w, r, err, "checkout creation failed")
		return
	}

	_, _ = utils.WriteJSON(w, checkout, http.StatusCreated)
}

// paypalWebhook verifies the transmission signature over the raw body
// before anything is decoded or touched in the store. Signature failures
// return without any database mutation.
func (h *Handler) paypalWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Msg("webhook body read failed")
		utils.WriteJSONError(w, "bad request", http.StatusBadRequest)
		return
	}

	transmissionID := r.Header.Get(paypalTransmissionIDHeader)
	timestamp := r.Header.Get(paypalTransmissionTimeHeader)
	signature := r.Header.Get(paypalTransmissionSigHeader)
	if transmissionID == "" || timestamp == "" || signature == "" {
		log.Error().Msg("paypal signature headers missing")
		utils.WriteJSONError(w, "signature headers missing", http.StatusBadRequest)
		return
	}

	if !h.services.PaymentService.VerifyPayPalSignature(body, transmissionID, timestamp, signature) {
		log.Error().Str("transmissionID", transmissionID).Msg("paypal signature mismatch")
		utils.WriteJSONError(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event service.PayPalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PaymentService.ProcessPayPalWebhook(ctx, event); err != nil {
		h.respondError(w, r, err, "paypal webhook processing failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusOK)
}

type mercadopagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

func (h *Handler) mercadopagoWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var notification mercadopagoNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PaymentService.ProcessMercadoPagoNotification(ctx, notification.Type, notification.Data.ID.String()); err != nil {
		h.respondError(w, r, err, "mercadopago notification processing failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"success": true}, http.StatusOK)
}
