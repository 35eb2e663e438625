package dto

import (
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the body of an ad hoc invoice.
type CreateInvoiceRequest struct {
	Student     string           `json:"student" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Currency    string           `json:"currency" binding:"omitempty,len=3"`
	DueDate     *Date            `json:"dueDate" binding:"required" swaggertype:"string" format:"date"`
	Term        string           `json:"term" binding:"required"`
	Description string           `json:"description"`
}

type InvoiceResponse struct {
	ID          string                  `json:"id"`
	School      string                  `json:"school"`
	Student     *StudentSummaryResponse `json:"student"`
	Amount      decimal.Decimal         `json:"amount" swaggertype:"number"`
	Currency    string                  `json:"currency"`
	DueDate     time.Time               `json:"dueDate"`
	Status      domain.InvoiceStatus    `json:"status"`
	Term        string                  `json:"term"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func ToInvoiceResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.InvoiceID,
		School:      inv.SchoolID,
		Student:     toStudentSummaryResponse(inv.Student),
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Term:        inv.Term,
		Description: inv.Description,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.LastUpdatedAt,
	}
}

func ToInvoiceListResponse(invoices []domain.Invoice) []InvoiceResponse {
	return lo.Map(invoices, func(inv domain.Invoice, _ int) InvoiceResponse { return ToInvoiceResponse(inv) })
}
