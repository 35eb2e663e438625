package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceGenerator implements the InvoiceGeneratorSvc interface
type invoiceGenerator struct {
	BaseService
	feeStructureRepo portsrepo.FeeStructureReader
	invoiceRepo      portsrepo.InvoiceRepositoryFacade
	now              func() time.Time
}

func NewInvoiceGenerator(feeStructureRepo portsrepo.FeeStructureReader, invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.InvoiceGeneratorSvc {
	return &invoiceGenerator{
		feeStructureRepo: feeStructureRepo,
		invoiceRepo:      invoiceRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.InvoiceGeneratorSvc = (*invoiceGenerator)(nil)

// GenerateMonthlyInvoices raises one pending invoice per active fee structure of the school for
// the given month. Each structure is handled independently: a structure that already has an
// invoice for the term, or that fails to persist, is reported in the result messages and the
// run continues.
func (g *invoiceGenerator) GenerateMonthlyInvoices(ctx context.Context, schoolID string, month, year int) (*domain.InvoiceGenerationResult, error) {
	term, err := domain.TermLabel(month, year)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("month must be between 1 and 12")
	}

	structures, err := g.feeStructureRepo.ListActiveFeeStructures(ctx, schoolID)
	if err != nil {
		g.LogError(ctx, err, "Failed to list active fee structures", slog.String("school_id", schoolID))
		return nil, err
	}

	result := &domain.InvoiceGenerationResult{Term: term}
	for _, fs := range structures {
		if msg := g.generateOne(ctx, schoolID, term, month, year, fs); msg != "" {
			result.Messages = append(result.Messages, msg)
			continue
		}
		result.Created++
	}

	g.LogInfo(ctx, "Monthly invoices generated",
		slog.String("school_id", schoolID),
		slog.String("term", term),
		slog.Int("created", result.Created),
		slog.Int("skipped", len(result.Messages)))
	return result, nil
}

// generateOne returns an empty string when an invoice was created, or the message to report.
func (g *invoiceGenerator) generateOne(ctx context.Context, schoolID, term string, month, year int, fs domain.FeeStructure) string {
	studentName := studentLabel(fs)

	exists, err := g.invoiceRepo.ExistsInvoiceForTerm(ctx, schoolID, fs.StudentID, term)
	if err != nil {
		g.LogError(ctx, err, "Failed to check existing invoice", slog.String("student_id", fs.StudentID))
		return fmt.Sprintf("Failed to create invoice for %s: %s", firstNameOf(fs), apperrors.PublicMessage(err, "Server error"))
	}
	if exists {
		return fmt.Sprintf("Invoice already exists for %s - %s", studentName, term)
	}

	amount := fs.ActualFee()
	if !amount.GreaterThan(decimal.Zero) {
		return fmt.Sprintf("Skipped %s - %s: amount due is %s", studentName, term, amount.String())
	}

	now := g.now()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		SchoolID:    schoolID,
		StudentID:   fs.StudentID,
		Amount:      amount,
		Currency:    domain.DefaultCurrency,
		DueDate:     domain.MonthlyDueDate(month, year),
		Status:      domain.InvoicePending,
		Term:        term,
		Description: domain.MonthlyInvoiceDescription(term, fs),
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := g.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		// A concurrent run may have inserted the same term after the check above.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Sprintf("Invoice already exists for %s - %s", studentName, term)
		}
		g.LogError(ctx, err, "Failed to save generated invoice", slog.String("student_id", fs.StudentID))
		return fmt.Sprintf("Failed to create invoice for %s: %s", firstNameOf(fs), apperrors.PublicMessage(err, "Server error"))
	}
	return ""
}

func studentLabel(fs domain.FeeStructure) string {
	if fs.Student == nil {
		return fs.StudentID
	}
	return fs.Student.FullName()
}

func firstNameOf(fs domain.FeeStructure) string {
	if fs.Student == nil {
		return fs.StudentID
	}
	return fs.Student.FirstName
}
