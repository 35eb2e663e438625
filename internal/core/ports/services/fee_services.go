package services

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/dto"
)

// FeeStructureSvcFacade is the registry of per-student fee structures.
type FeeStructureSvcFacade interface {
	// CreateFeeStructure makes a new structure the single active one of its student.
	CreateFeeStructure(ctx context.Context, schoolID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error)

	// UpdateFeeStructure edits a structure in place without touching other structures.
	UpdateFeeStructure(ctx context.Context, schoolID, feeStructureID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error)

	ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error)
}

// InvoiceGeneratorSvc bills every active fee structure of a school for one month.
type InvoiceGeneratorSvc interface {
	// GenerateMonthlyInvoices never fails because of a single structure; per-structure
	// failures and skips are reported in the result.
	GenerateMonthlyInvoices(ctx context.Context, schoolID string, month, year int) (*domain.InvoiceGenerationResult, error)
}

// InvoiceSvcFacade defines ad hoc invoicing and invoice listings.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, schoolID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	ListSchoolInvoices(ctx context.Context, schoolID string) ([]domain.Invoice, error)
	ListParentInvoices(ctx context.Context, parent domain.Identity) ([]domain.Invoice, error)
}

// PaymentSvcFacade drives an invoice from pending to paid through a gateway transaction.
type PaymentSvcFacade interface {
	// InitiatePayment opens a transaction for an unpaid invoice of one of the parent's children.
	InitiatePayment(ctx context.Context, parent domain.Identity, invoiceID string, gateway domain.Gateway) (*domain.PaymentInitiation, error)

	// HandleWebhook applies an authenticated gateway outcome.
	HandleWebhook(ctx context.Context, outcome domain.PaymentOutcome) error
}
