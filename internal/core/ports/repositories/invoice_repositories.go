package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ExistsInvoiceForTerm reports whether the student already has an invoice for term.
	ExistsInvoiceForTerm(ctx context.Context, schoolID, studentID, term string) (bool, error)

	// ListInvoicesBySchool lists a school's invoices newest first with the student summary joined.
	ListInvoicesBySchool(ctx context.Context, schoolID string) ([]domain.Invoice, error)

	// ListInvoicesByStudents lists the invoices of the given students newest first.
	ListInvoicesByStudents(ctx context.Context, studentIDs []string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice. An invoice already recorded for the same
	// (school, student, term) yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
