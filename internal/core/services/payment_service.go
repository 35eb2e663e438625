package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/payments"
	"github.com/google/uuid"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	invoiceRepo     portsrepo.InvoiceReader
	studentRepo     portsrepo.StudentReader
	transactionRepo portsrepo.TransactionRepositoryFacade
	redirects       payments.RedirectBuilder
}

func NewPaymentService(
	invoiceRepo portsrepo.InvoiceReader,
	studentRepo portsrepo.StudentReader,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	redirects payments.RedirectBuilder,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		invoiceRepo:     invoiceRepo,
		studentRepo:     studentRepo,
		transactionRepo: transactionRepo,
		redirects:       redirects,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// InitiatePayment opens an initiated transaction for an unpaid invoice of one of the
// parent's children and returns the gateway checkout URL.
func (s *paymentService) InitiatePayment(ctx context.Context, parent domain.Identity, invoiceID string, gateway domain.Gateway) (*domain.PaymentInitiation, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Invoice not found", "Failed to find invoice", slog.String("invoice_id", invoiceID))
	}

	if invoice.SchoolID != parent.SchoolID {
		return nil, apperrors.NewForbiddenError("Invoice does not belong to your child")
	}
	student, err := s.studentRepo.FindStudentByID(ctx, invoice.SchoolID, invoice.StudentID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Student not found", "Failed to find invoice student", slog.String("invoice_id", invoiceID))
	}
	if student.ParentID == nil || *student.ParentID != parent.UserID {
		return nil, apperrors.NewForbiddenError("Invoice does not belong to your child")
	}

	if invoice.IsPaid() {
		return nil, apperrors.NewInvalidStateError("Invoice already paid")
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		InvoiceID:     invoice.InvoiceID,
		Amount:        invoice.Amount,
		Gateway:       gateway,
		Status:        domain.TransactionInitiated,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment initiated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("invoice_id", invoiceID),
		slog.String("gateway", string(gateway)))

	return &domain.PaymentInitiation{
		TransactionID: txn.TransactionID,
		Gateway:       gateway,
		RedirectURL:   s.redirects.CheckoutURL(gateway, txn.TransactionID),
		Amount:        txn.Amount,
	}, nil
}

// HandleWebhook records a verified gateway outcome. A success marks the invoice paid.
func (s *paymentService) HandleWebhook(ctx context.Context, outcome domain.PaymentOutcome) error {
	if outcome.Status != domain.TransactionSuccess && outcome.Status != domain.TransactionFailed {
		return apperrors.NewValidationFailedError(`"status" must be one of [success, failed]`)
	}

	txn, err := s.transactionRepo.ApplyPaymentOutcome(ctx, outcome)
	if err != nil {
		return s.notFoundAs(ctx, err, "Transaction not found", "Failed to apply payment outcome", slog.String("transaction_id", outcome.TransactionID))
	}

	s.LogInfo(ctx, "Payment webhook processed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("invoice_id", txn.InvoiceID),
		slog.String("status", string(txn.Status)))
	return nil
}
