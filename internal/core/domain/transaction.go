package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Gateway identifies an external payment gateway.
type Gateway string

const (
	GatewayEsewa   Gateway = "esewa"
	GatewayKhalti  Gateway = "khalti"
	GatewayFonepay Gateway = "fonepay"
)

// TransactionStatus is the state of one payment attempt.
type TransactionStatus string

const (
	TransactionInitiated TransactionStatus = "initiated"
	TransactionSuccess   TransactionStatus = "success"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction records one payment attempt against an invoice.
type Transaction struct {
	TransactionID string            `json:"id"`
	InvoiceID     string            `json:"invoice"`
	Amount        decimal.Decimal   `json:"amount"`
	Gateway       Gateway           `json:"gateway"`
	Status        TransactionStatus `json:"status"`
	GatewayRefID  *string           `json:"gatewayRefId,omitempty"`
	RawResponse   json.RawMessage   `json:"rawResponse,omitempty"`
	AuditFields
}

// PaymentOutcome is the result reported by a gateway callback.
type PaymentOutcome struct {
	TransactionID string
	Status        TransactionStatus
	GatewayRefID  string
	RawPayload    json.RawMessage
}

// PaymentInitiation is returned to the payer after a transaction is opened.
type PaymentInitiation struct {
	TransactionID string
	Gateway       Gateway
	RedirectURL   string
	Amount        decimal.Decimal
}
