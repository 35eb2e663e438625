package handlers_test

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}
func (m *MockAuthService) RegisterSchool(ctx context.Context, req dto.RegisterSchoolRequest) (*domain.School, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockAuthService) RegisterParent(ctx context.Context, req dto.RegisterParentRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockAuthService) EnsureSuperAdmin(ctx context.Context, name, email, password string) error {
	return m.Called(ctx, name, email, password).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock AccountStatus ---
type MockAccountStatus struct {
	mock.Mock
}

func (m *MockAccountStatus) IsActive(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.AccountStatusSvc = (*MockAccountStatus)(nil)

// --- Mock SchoolService ---
type MockSchoolService struct {
	mock.Mock
}

func (m *MockSchoolService) ListApprovedSchools(ctx context.Context) ([]domain.School, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.School), args.Error(1)
}
func (m *MockSchoolService) ListSchools(ctx context.Context) ([]domain.School, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.School), args.Error(1)
}
func (m *MockSchoolService) GetSchoolDetails(ctx context.Context, schoolID string) (*domain.SchoolDetails, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDetails), args.Error(1)
}
func (m *MockSchoolService) GetSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockSchoolService) ApproveSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockSchoolService) RejectSchool(ctx context.Context, schoolID string) (*domain.School, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockSchoolService) PrepareParentNotifications(ctx context.Context, schoolID string) (*domain.ParentNotificationBatch, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParentNotificationBatch), args.Error(1)
}
func (m *MockSchoolService) PrepareSchoolNotification(ctx context.Context, schoolID string) (*domain.SchoolNotification, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolNotification), args.Error(1)
}

var _ portssvc.SchoolSvcFacade = (*MockSchoolService)(nil)

// --- Mock PlanService ---
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Plan), args.Error(1)
}
func (m *MockPlanService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

var _ portssvc.PlanSvcFacade = (*MockPlanService)(nil)

// --- Mock StudentService ---
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentService) CreateStudent(ctx context.Context, schoolID string, req dto.StudentRequest) (*domain.Student, error) {
	args := m.Called(ctx, schoolID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentService) UpdateStudent(ctx context.Context, schoolID, studentID string, req dto.StudentRequest) (*domain.Student, error) {
	args := m.Called(ctx, schoolID, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentService) DeleteStudent(ctx context.Context, schoolID, studentID string) error {
	return m.Called(ctx, schoolID, studentID).Error(0)
}

var _ portssvc.StudentSvcFacade = (*MockStudentService)(nil)

// --- Mock ParentService ---
type MockParentService struct {
	mock.Mock
}

func (m *MockParentService) LinkChild(ctx context.Context, parent domain.Identity, studentCode string) (*domain.Student, error) {
	args := m.Called(ctx, parent, studentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockParentService) ListChildren(ctx context.Context, parent domain.Identity) ([]domain.Student, error) {
	args := m.Called(ctx, parent)
	return args.Get(0).([]domain.Student), args.Error(1)
}

var _ portssvc.ParentSvcFacade = (*MockParentService)(nil)

// --- Mock FeeStructureService ---
type MockFeeStructureService struct {
	mock.Mock
}

func (m *MockFeeStructureService) CreateFeeStructure(ctx context.Context, schoolID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}
func (m *MockFeeStructureService) UpdateFeeStructure(ctx context.Context, schoolID, feeStructureID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, feeStructureID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}
func (m *MockFeeStructureService) ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

var _ portssvc.FeeStructureSvcFacade = (*MockFeeStructureService)(nil)

// --- Mock InvoiceGenerator ---
type MockInvoiceGenerator struct {
	mock.Mock
}

func (m *MockInvoiceGenerator) GenerateMonthlyInvoices(ctx context.Context, schoolID string, month, year int) (*domain.InvoiceGenerationResult, error) {
	args := m.Called(ctx, schoolID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceGenerationResult), args.Error(1)
}

var _ portssvc.InvoiceGeneratorSvc = (*MockInvoiceGenerator)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, schoolID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, schoolID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListSchoolInvoices(ctx context.Context, schoolID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListParentInvoices(ctx context.Context, parent domain.Identity) ([]domain.Invoice, error) {
	args := m.Called(ctx, parent)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) InitiatePayment(ctx context.Context, parent domain.Identity, invoiceID string, gateway domain.Gateway) (*domain.PaymentInitiation, error) {
	args := m.Called(ctx, parent, invoiceID, gateway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentInitiation), args.Error(1)
}
func (m *MockPaymentService) HandleWebhook(ctx context.Context, outcome domain.PaymentOutcome) error {
	return m.Called(ctx, outcome).Error(0)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)
