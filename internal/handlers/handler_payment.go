package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/SscSPs/school_fee_app/internal/payments"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// paymentHandler handles payment initiation and the gateway webhook.
type paymentHandler struct {
	errorResponder
	paymentService portssvc.PaymentSvcFacade
	verifier       payments.SignatureVerifier
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, verifier payments.SignatureVerifier, responder errorResponder) *paymentHandler {
	return &paymentHandler{errorResponder: responder, paymentService: ps, verifier: verifier}
}

// registerPaymentRoutes registers payment initiation for parents and the public webhook. The
// webhook authenticates the gateway by signature instead of a session token.
func registerPaymentRoutes(public, protected *gin.RouterGroup, ps portssvc.PaymentSvcFacade, verifier payments.SignatureVerifier, responder errorResponder) {
	h := newPaymentHandler(ps, verifier, responder)

	protected.POST("/payments/initiate", middleware.RequireCapability(domain.CapPayInvoices), h.initiatePayment)
	public.POST("/payments/webhook", h.handleWebhook)
}

// initiatePayment godoc
// @Summary Initiate a payment
// @Description Opens a gateway transaction for an unpaid invoice of one of the caller's children
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.InitiatePaymentRequest true "Invoice and gateway"
// @Success 200 {object} dto.InitiatePaymentResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Invoice does not belong to your child"
// @Failure 404 {object} dto.MessageResponse "Invoice not found"
// @Failure 409 {object} dto.MessageResponse "Invoice already paid"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /payments/initiate [post]
func (h *paymentHandler) initiatePayment(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	initiation, err := h.paymentService.InitiatePayment(c.Request.Context(), identity, req.InvoiceID, req.Gateway)
	if err != nil {
		h.respondError(c, err, "initiate payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInitiatePaymentResponse(*initiation))
}

// handleWebhook godoc
// @Summary Payment gateway webhook
// @Description Applies a signed gateway outcome. A success marks the invoice paid.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string false "Hex HMAC-SHA256 of the raw body (hmac scheme)"
// @Param outcome body dto.PaymentWebhookRequest true "Gateway outcome"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Invalid webhook signature"
// @Failure 404 {object} dto.MessageResponse "Transaction not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Router /payments/webhook [post]
func (h *paymentHandler) handleWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read webhook body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Request body is required"})
		return
	}

	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		logger.Warn("Webhook signature rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid webhook signature"})
		return
	}

	var req dto.PaymentWebhookRequest
	if err := binding.JSON.BindBody(payload, &req); err != nil {
		logger.Warn("Failed to bind webhook body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: dto.ValidationMessage(err)})
		return
	}

	outcome := domain.PaymentOutcome{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		GatewayRefID:  req.GatewayRefID,
		RawPayload:    payload,
	}
	if err := h.paymentService.HandleWebhook(c.Request.Context(), outcome); err != nil {
		h.respondError(c, err, "process payment webhook")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Webhook processed"})
}
