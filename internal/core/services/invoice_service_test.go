package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/core/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo *MockInvoiceRepository
	studentRepo *MockStudentRepository
	ctx         context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.studentRepo = new(MockStudentRepository)
	suite.ctx = context.Background()
}

func invoiceRequest() dto.CreateInvoiceRequest {
	amount := decimal.NewFromInt(2500)
	return dto.CreateInvoiceRequest{
		Student: "st-1",
		Amount:  &amount,
		DueDate: &dto.Date{Time: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		Term:    "Admission 2025",
	}
}

func (suite *InvoiceServiceTestSuite) TestCreate_DefaultsCurrency() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-1").
		Return(&domain.Student{StudentID: "st-1", SchoolID: "school-1", FirstName: "Asha"}, nil).Once()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	svc := services.NewInvoiceService(suite.invoiceRepo, suite.studentRepo)

	invoice, err := svc.CreateInvoice(suite.ctx, "school-1", invoiceRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultCurrency, invoice.Currency)
	suite.Equal(domain.InvoicePending, invoice.Status)
	suite.Equal("Asha", invoice.Student.FirstName)
}

func (suite *InvoiceServiceTestSuite) TestCreate_DuplicateTerm() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-1").
		Return(&domain.Student{StudentID: "st-1", SchoolID: "school-1"}, nil).Once()
	suite.invoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(apperrors.ErrDuplicate).Once()
	svc := services.NewInvoiceService(suite.invoiceRepo, suite.studentRepo)

	_, err := svc.CreateInvoice(suite.ctx, "school-1", invoiceRequest())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InvoiceServiceTestSuite) TestListParentInvoices() {
	parent := domain.Identity{UserID: "p-1", Role: domain.RoleParent, SchoolID: "school-1"}
	suite.studentRepo.On("ListStudentsByParent", mock.Anything, "school-1", "p-1").
		Return([]domain.Student{{StudentID: "st-1"}, {StudentID: "st-2"}}, nil).Once()
	suite.invoiceRepo.On("ListInvoicesByStudents", mock.Anything, []string{"st-1", "st-2"}).
		Return([]domain.Invoice{{InvoiceID: "inv-1"}}, nil).Once()
	svc := services.NewInvoiceService(suite.invoiceRepo, suite.studentRepo)

	invoices, err := svc.ListParentInvoices(suite.ctx, parent)

	suite.Require().NoError(err)
	suite.Len(invoices, 1)
}

func (suite *InvoiceServiceTestSuite) TestListParentInvoices_NoChildren() {
	parent := domain.Identity{UserID: "p-1", Role: domain.RoleParent, SchoolID: "school-1"}
	suite.studentRepo.On("ListStudentsByParent", mock.Anything, "school-1", "p-1").Return([]domain.Student{}, nil).Once()
	svc := services.NewInvoiceService(suite.invoiceRepo, suite.studentRepo)

	invoices, err := svc.ListParentInvoices(suite.ctx, parent)

	suite.Require().NoError(err)
	suite.NotNil(invoices)
	suite.Empty(invoices)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "ListInvoicesByStudents", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
