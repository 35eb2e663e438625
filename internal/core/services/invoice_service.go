package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	studentRepo portsrepo.StudentReader
}

func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, studentRepo portsrepo.StudentReader) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo, studentRepo: studentRepo}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice raises an ad hoc pending invoice for a student of the school.
func (s *invoiceService) CreateInvoice(ctx context.Context, schoolID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, req.Student)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Student not found in your school", "Failed to find student", slog.String("student_id", req.Student))
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	now := time.Now().UTC()
	summary := student.Summary()
	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		SchoolID:    schoolID,
		StudentID:   student.StudentID,
		Student:     &summary,
		Amount:      *req.Amount,
		Currency:    currency,
		DueDate:     req.DueDate.Time,
		Status:      domain.InvoicePending,
		Term:        req.Term,
		Description: req.Description,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Invoice already exists for this student and term")
		}
		s.LogError(ctx, err, "Failed to save invoice", slog.String("student_id", student.StudentID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("term", invoice.Term))
	return &invoice, nil
}

func (s *invoiceService) ListSchoolInvoices(ctx context.Context, schoolID string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoicesBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list school invoices", slog.String("school_id", schoolID))
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// ListParentInvoices lists the invoices of every child linked to the parent.
func (s *invoiceService) ListParentInvoices(ctx context.Context, parent domain.Identity) ([]domain.Invoice, error) {
	children, err := s.studentRepo.ListStudentsByParent(ctx, parent.SchoolID, parent.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list children", slog.String("parent_id", parent.UserID))
		return nil, err
	}
	if len(children) == 0 {
		return []domain.Invoice{}, nil
	}

	ids := lo.Map(children, func(st domain.Student, _ int) string { return st.StudentID })
	invoices, err := s.invoiceRepo.ListInvoicesByStudents(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parent invoices", slog.String("parent_id", parent.UserID))
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}
