package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- User repository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindSchoolAdmin(ctx context.Context, schoolID string) (*domain.User, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	return m.Called(ctx, userID, passwordHash, updatedAt).Error(0)
}

// --- School repository ---

type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}

func (m *MockSchoolRepository) ListSchools(ctx context.Context, approvedOnly bool) ([]domain.School, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.School), args.Error(1)
}

func (m *MockSchoolRepository) SaveSchoolWithAdmin(ctx context.Context, school domain.School, admin domain.User) error {
	return m.Called(ctx, school, admin).Error(0)
}

func (m *MockSchoolRepository) SetSchoolApproval(ctx context.Context, schoolID string, approved bool) (*domain.School, error) {
	args := m.Called(ctx, schoolID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}

// --- Plan repository ---

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

// --- Student repository ---

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, schoolID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindStudentByCode(ctx context.Context, schoolID, studentCode string) (*domain.Student, error) {
	args := m.Called(ctx, schoolID, studentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListStudentsBySchool(ctx context.Context, schoolID string) ([]domain.Student, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListStudentsByParent(ctx context.Context, schoolID, parentID string) ([]domain.Student, error) {
	args := m.Called(ctx, schoolID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *MockStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *MockStudentRepository) DeleteStudent(ctx context.Context, schoolID, studentID string) error {
	return m.Called(ctx, schoolID, studentID).Error(0)
}

func (m *MockStudentRepository) LinkParent(ctx context.Context, studentID, parentID string) error {
	return m.Called(ctx, studentID, parentID).Error(0)
}

// --- Fee structure repository ---

type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) FindFeeStructureByID(ctx context.Context, schoolID, feeStructureID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, feeStructureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) CreateActiveFeeStructure(ctx context.Context, fs domain.FeeStructure) error {
	return m.Called(ctx, fs).Error(0)
}

func (m *MockFeeStructureRepository) UpdateFeeStructure(ctx context.Context, fs domain.FeeStructure) error {
	return m.Called(ctx, fs).Error(0)
}

// --- Invoice repository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsInvoiceForTerm(ctx context.Context, schoolID, studentID, term string) (bool, error) {
	args := m.Called(ctx, schoolID, studentID, term)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesBySchool(ctx context.Context, schoolID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByStudents(ctx context.Context, studentIDs []string) ([]domain.Invoice, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

// --- Transaction repository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) ApplyPaymentOutcome(ctx context.Context, outcome domain.PaymentOutcome) (*domain.Transaction, error) {
	args := m.Called(ctx, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// memInvoiceRepository keeps invoices in memory and enforces the (school, student, term)
// uniqueness the database index provides.
type memInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[string]domain.Invoice
	// skipExistsCheck makes ExistsInvoiceForTerm always report false, as a concurrent run
	// racing the pre-check would observe.
	skipExistsCheck bool
}

func newMemInvoiceRepository() *memInvoiceRepository {
	return &memInvoiceRepository{invoices: map[string]domain.Invoice{}}
}

func termKey(schoolID, studentID, term string) string {
	return schoolID + "|" + studentID + "|" + term
}

func (r *memInvoiceRepository) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.InvoiceID == invoiceID {
			return &inv, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memInvoiceRepository) ExistsInvoiceForTerm(_ context.Context, schoolID, studentID, term string) (bool, error) {
	if r.skipExistsCheck {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.invoices[termKey(schoolID, studentID, term)]
	return ok, nil
}

func (r *memInvoiceRepository) ListInvoicesBySchool(_ context.Context, schoolID string) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if inv.SchoolID == schoolID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvoiceRepository) ListInvoicesByStudents(_ context.Context, studentIDs []string) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if want[inv.StudentID] {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvoiceRepository) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := termKey(invoice.SchoolID, invoice.StudentID, invoice.Term)
	if _, ok := r.invoices[key]; ok {
		return apperrors.ErrDuplicate
	}
	r.invoices[key] = invoice
	return nil
}

func (r *memInvoiceRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invoices)
}
