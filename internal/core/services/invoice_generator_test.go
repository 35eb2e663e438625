package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceGeneratorTestSuite struct {
	suite.Suite
	feeRepo     *MockFeeStructureRepository
	invoiceRepo *memInvoiceRepository
	ctx         context.Context
}

func (suite *InvoiceGeneratorTestSuite) SetupTest() {
	suite.feeRepo = new(MockFeeStructureRepository)
	suite.invoiceRepo = newMemInvoiceRepository()
	suite.ctx = context.Background()
}

func feeStructureFor(studentID, first, last string, monthly int64, kind domain.ScholarshipType, scholarship int64) domain.FeeStructure {
	return domain.FeeStructure{
		FeeStructureID:  "fs-" + studentID,
		SchoolID:        "school-1",
		StudentID:       studentID,
		Student:         &domain.StudentSummary{StudentID: studentID, FirstName: first, LastName: last},
		MonthlyFee:      decimal.NewFromInt(monthly),
		Scholarship:     decimal.NewFromInt(scholarship),
		ScholarshipType: kind,
		IsActive:        true,
	}
}

func (suite *InvoiceGeneratorTestSuite) TestGenerateTwice_SecondRunReportsExisting() {
	structures := []domain.FeeStructure{
		feeStructureFor("st-1", "Asha", "Rai", 1000, domain.ScholarshipPercentage, 20),
		feeStructureFor("st-2", "Bikash", "Thapa", 1500, domain.ScholarshipNone, 0),
	}
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return(structures, nil).Twice()
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	first, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	suite.Equal("April 2025", first.Term)
	suite.Equal(2, first.Created)
	suite.Empty(first.Messages)

	second, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	suite.Equal(0, second.Created)
	suite.Equal([]string{
		"Invoice already exists for Asha Rai - April 2025",
		"Invoice already exists for Bikash Thapa - April 2025",
	}, second.Messages)
	suite.Equal(2, suite.invoiceRepo.count())
	suite.feeRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceGeneratorTestSuite) TestGeneratedInvoiceFields() {
	structures := []domain.FeeStructure{feeStructureFor("st-1", "Asha", "Rai", 1000, domain.ScholarshipPercentage, 20)}
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return(structures, nil).Once()
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	_, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)

	invoices, _ := suite.invoiceRepo.ListInvoicesBySchool(suite.ctx, "school-1")
	suite.Require().Len(invoices, 1)
	inv := invoices[0]
	suite.True(decimal.NewFromInt(800).Equal(inv.Amount))
	suite.Equal(domain.InvoicePending, inv.Status)
	suite.Equal(domain.DefaultCurrency, inv.Currency)
	suite.Equal(15, inv.DueDate.Day())
	suite.Equal("Monthly fee for April 2025 (Scholarship: 20%)", inv.Description)
}

func (suite *InvoiceGeneratorTestSuite) TestNoActiveStructures() {
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return([]domain.FeeStructure{}, nil).Once()
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	result, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	suite.Equal(0, result.Created)
	suite.Empty(result.Messages)
}

func (suite *InvoiceGeneratorTestSuite) TestRacedDuplicateIsReportedAsExisting() {
	structures := []domain.FeeStructure{feeStructureFor("st-1", "Asha", "Rai", 1000, domain.ScholarshipNone, 0)}
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return(structures, nil).Twice()
	suite.invoiceRepo.skipExistsCheck = true
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	_, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	result, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)

	suite.Equal(0, result.Created)
	suite.Equal([]string{"Invoice already exists for Asha Rai - April 2025"}, result.Messages)
	suite.Equal(1, suite.invoiceRepo.count())
}

func (suite *InvoiceGeneratorTestSuite) TestZeroAmountIsSkipped() {
	structures := []domain.FeeStructure{
		feeStructureFor("st-1", "Asha", "Rai", 1000, domain.ScholarshipFixed, 1500),
		feeStructureFor("st-2", "Bikash", "Thapa", 1500, domain.ScholarshipNone, 0),
	}
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return(structures, nil).Once()
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	result, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	suite.Equal(1, result.Created)
	suite.Equal([]string{"Skipped Asha Rai - April 2025: amount due is 0"}, result.Messages)
}

func (suite *InvoiceGeneratorTestSuite) TestItemFailureDoesNotAbortBatch() {
	structures := []domain.FeeStructure{
		feeStructureFor("st-1", "Asha", "Rai", 1000, domain.ScholarshipNone, 0),
		feeStructureFor("st-2", "Bikash", "Thapa", 1500, domain.ScholarshipNone, 0),
	}
	suite.feeRepo.On("ListActiveFeeStructures", mock.Anything, "school-1").Return(structures, nil).Once()

	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("ExistsInvoiceForTerm", mock.Anything, "school-1", mock.Anything, "April 2025").Return(false, nil)
	invoiceRepo.On("SaveInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool { return inv.StudentID == "st-1" })).
		Return(assert.AnError).Once()
	invoiceRepo.On("SaveInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool { return inv.StudentID == "st-2" })).
		Return(nil).Once()
	generator := services.NewInvoiceGenerator(suite.feeRepo, invoiceRepo)

	result, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 4, 2025)
	suite.Require().NoError(err)
	suite.Equal(1, result.Created)
	suite.Equal([]string{"Failed to create invoice for Asha: Server error"}, result.Messages)
	invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceGeneratorTestSuite) TestInvalidMonth() {
	generator := services.NewInvoiceGenerator(suite.feeRepo, suite.invoiceRepo)

	result, err := generator.GenerateMonthlyInvoices(suite.ctx, "school-1", 13, 2025)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.feeRepo.AssertNotCalled(suite.T(), "ListActiveFeeStructures", mock.Anything, mock.Anything)
}

func TestInvoiceGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceGeneratorTestSuite))
}
