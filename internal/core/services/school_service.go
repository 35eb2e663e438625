package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const approvedSchoolsCacheKey = "schools:approved"

// schoolService implements the SchoolSvcFacade interface
type schoolService struct {
	BaseService
	schoolRepo  portsrepo.SchoolRepositoryFacade
	studentRepo portsrepo.StudentReader
	invoiceRepo portsrepo.InvoiceReader
	userRepo    portsrepo.UserReader
	cache       *cache.Cache
}

// NewSchoolService creates a school service. The public approved-schools listing is cached
// in process for cacheTTL and dropped whenever approval changes.
func NewSchoolService(
	schoolRepo portsrepo.SchoolRepositoryFacade,
	studentRepo portsrepo.StudentReader,
	invoiceRepo portsrepo.InvoiceReader,
	userRepo portsrepo.UserReader,
	cacheTTL time.Duration,
) portssvc.SchoolSvcFacade {
	return &schoolService{
		schoolRepo:  schoolRepo,
		studentRepo: studentRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
	}
}

var _ portssvc.SchoolSvcFacade = (*schoolService)(nil)

func (s *schoolService) ListApprovedSchools(ctx context.Context) ([]domain.School, error) {
	if cached, found := s.cache.Get(approvedSchoolsCacheKey); found {
		s.LogDebug(ctx, "Approved schools served from cache")
		return cached.([]domain.School), nil
	}

	schools, err := s.schoolRepo.ListSchools(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approved schools")
		return nil, err
	}
	if schools == nil {
		schools = []domain.School{}
	}

	s.cache.Set(approvedSchoolsCacheKey, schools, cache.DefaultExpiration)
	return schools, nil
}

func (s *schoolService) ListSchools(ctx context.Context) ([]domain.School, error) {
	schools, err := s.schoolRepo.ListSchools(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list schools")
		return nil, err
	}
	if schools == nil {
		return []domain.School{}, nil
	}
	return schools, nil
}

func (s *schoolService) GetSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	school, err := s.schoolRepo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "School not found", "Failed to get school", slog.String("school_id", schoolID))
	}
	return school, nil
}

// GetSchoolDetails returns the school with its roster, invoices and fee statistics.
func (s *schoolService) GetSchoolDetails(ctx context.Context, schoolID string) (*domain.SchoolDetails, error) {
	school, err := s.GetSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListStudentsBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students for school details", slog.String("school_id", schoolID))
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices for school details", slog.String("school_id", schoolID))
		return nil, err
	}

	return &domain.SchoolDetails{
		School:     *school,
		Students:   lo.Ternary(students == nil, []domain.Student{}, students),
		Invoices:   lo.Ternary(invoices == nil, []domain.Invoice{}, invoices),
		Statistics: computeSchoolStatistics(len(students), invoices),
	}, nil
}

func (s *schoolService) ApproveSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	return s.setApproval(ctx, schoolID, true)
}

func (s *schoolService) RejectSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	return s.setApproval(ctx, schoolID, false)
}

func (s *schoolService) setApproval(ctx context.Context, schoolID string, approved bool) (*domain.School, error) {
	school, err := s.schoolRepo.SetSchoolApproval(ctx, schoolID, approved)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "School not found", "Failed to change school approval",
			slog.String("school_id", schoolID))
	}

	s.cache.Delete(approvedSchoolsCacheKey)
	s.LogInfo(ctx, "School approval changed", slog.String("school_id", schoolID), slog.Bool("approved", approved))
	return school, nil
}

// PrepareParentNotifications groups the school's pending invoices by the parent of each
// invoice's student. Invoices of students without a parent count towards the total only.
func (s *schoolService) PrepareParentNotifications(ctx context.Context, schoolID string) (*domain.ParentNotificationBatch, error) {
	if _, err := s.GetSchool(ctx, schoolID); err != nil {
		return nil, err
	}

	pending, err := s.pendingInvoices(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListStudentsBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students for notifications", slog.String("school_id", schoolID))
		return nil, err
	}
	parentByStudent := lo.PickBy(
		lo.KeyBy(students, func(st domain.Student) string { return st.StudentID }),
		func(_ string, st domain.Student) bool { return st.Parent != nil },
	)

	withParent := lo.Filter(pending, func(inv domain.Invoice, _ int) bool {
		_, ok := parentByStudent[inv.StudentID]
		return ok
	})
	parentOf := func(inv domain.Invoice) string { return parentByStudent[inv.StudentID].Parent.UserID }
	grouped := lo.GroupBy(withParent, parentOf)

	notifications := lo.Map(lo.Uniq(lo.Map(withParent, func(inv domain.Invoice, _ int) string { return parentOf(inv) })),
		func(parentID string, _ int) domain.ParentNotification {
			invoices := grouped[parentID]
			return domain.ParentNotification{
				Parent:      *parentByStudent[invoices[0].StudentID].Parent,
				Invoices:    invoices,
				TotalAmount: sumAmounts(invoices),
			}
		})

	s.LogInfo(ctx, "Parent notifications prepared",
		slog.String("school_id", schoolID),
		slog.Int("parents", len(notifications)),
		slog.Int("pending_invoices", len(pending)))

	return &domain.ParentNotificationBatch{
		Notifications:      notifications,
		TotalPendingAmount: sumAmounts(pending),
	}, nil
}

// PrepareSchoolNotification summarises the school's pending invoices for its admin.
func (s *schoolService) PrepareSchoolNotification(ctx context.Context, schoolID string) (*domain.SchoolNotification, error) {
	if _, err := s.GetSchool(ctx, schoolID); err != nil {
		return nil, err
	}

	admin, err := s.userRepo.FindSchoolAdmin(ctx, schoolID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "School admin not found", "Failed to find school admin",
			slog.String("school_id", schoolID))
	}

	pending, err := s.pendingInvoices(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	return &domain.SchoolNotification{
		SchoolAdmin:          admin.Summary(),
		PendingInvoicesCount: len(pending),
		TotalPendingAmount:   sumAmounts(pending),
	}, nil
}

func (s *schoolService) pendingInvoices(ctx context.Context, schoolID string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoicesBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("school_id", schoolID))
		return nil, err
	}
	return lo.Filter(invoices, func(inv domain.Invoice, _ int) bool {
		return inv.Status == domain.InvoicePending
	}), nil
}

func computeSchoolStatistics(studentCount int, invoices []domain.Invoice) domain.SchoolStatistics {
	byStatus := lo.GroupBy(invoices, func(inv domain.Invoice) domain.InvoiceStatus { return inv.Status })
	pending := sumAmounts(byStatus[domain.InvoicePending])
	overdue := sumAmounts(byStatus[domain.InvoiceOverdue])
	return domain.SchoolStatistics{
		TotalStudents:   studentCount,
		TotalInvoices:   len(invoices),
		TotalAmount:     sumAmounts(invoices),
		PaidAmount:      sumAmounts(byStatus[domain.InvoicePaid]),
		PendingAmount:   pending,
		OverdueAmount:   overdue,
		RemainingAmount: pending.Add(overdue),
	}
}

func sumAmounts(invoices []domain.Invoice) decimal.Decimal {
	return lo.Reduce(invoices, func(total decimal.Decimal, inv domain.Invoice, _ int) decimal.Decimal {
		return total.Add(inv.Amount)
	}, decimal.Zero)
}
