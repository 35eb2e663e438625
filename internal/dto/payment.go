package dto

import (
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

type InitiatePaymentRequest struct {
	InvoiceID string         `json:"invoiceId" binding:"required"`
	Gateway   domain.Gateway `json:"gateway" binding:"required,oneof=esewa khalti fonepay"`
}

type InitiatePaymentResponse struct {
	TransactionID string          `json:"transactionId"`
	Gateway       domain.Gateway  `json:"gateway"`
	RedirectURL   string          `json:"redirectUrl"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
}

// PaymentWebhookRequest is the callback a gateway posts once a payment settles.
type PaymentWebhookRequest struct {
	TransactionID string                   `json:"transactionId" binding:"required"`
	Status        domain.TransactionStatus `json:"status" binding:"required,oneof=success failed"`
	GatewayRefID  string                   `json:"gatewayRefId"`
}

func ToInitiatePaymentResponse(p domain.PaymentInitiation) InitiatePaymentResponse {
	return InitiatePaymentResponse{
		TransactionID: p.TransactionID,
		Gateway:       p.Gateway,
		RedirectURL:   p.RedirectURL,
		Amount:        p.Amount,
	}
}
