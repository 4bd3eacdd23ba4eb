package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/epicesports/tournament-platform/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(ps *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// CreateOrderHandler обрабатывает POST /api/payments/order: создаёт платёжный
// ордер, если в турнире ещё есть места. Состояние турнира не меняется.
func (h *PaymentHandler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.TournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament_id is required"))
		return
	}

	order, err := h.paymentService.CreateOrder(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"order": order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type verifyPaymentRequest struct {
	Proof        services.PaymentProof      `json:"proof"`
	Registration services.RegistrationInput `json:"registration"`
}

// VerifyHandler обрабатывает POST /api/payments/verify: проверяет подпись
// платежа и атомарно коммитит регистрацию.
func (h *PaymentHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var input verifyPaymentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Proof.OrderID == "" || input.Proof.PaymentID == "" || input.Proof.Signature == "" {
		badRequestResponse(w, r, errors.New("razorpay_order_id, razorpay_payment_id and razorpay_signature are required"))
		return
	}
	if input.Registration.TournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament_id is required"))
		return
	}

	team, err := h.paymentService.VerifyAndCommit(r.Context(), input.Proof, input.Registration)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// WebhookHandler обрабатывает POST /api/payments/webhook. Подпись считается по
// сырому телу запроса, поэтому тело читаем до любого декодирования.
func (h *PaymentHandler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		badRequestResponse(w, r, errors.New("failed to read webhook body"))
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" {
		badRequestResponse(w, r, errors.New("missing webhook signature"))
		return
	}

	if err := h.paymentService.HandleWebhook(r.Context(), body, signature); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
