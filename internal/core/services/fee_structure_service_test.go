package services_test

import (
	"context"
	"sync"
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

// memFeeStructureRepository mirrors the transactional deactivate-then-insert of the
// database repository.
type memFeeStructureRepository struct {
	mu         sync.Mutex
	structures []domain.FeeStructure
}

func (r *memFeeStructureRepository) FindFeeStructureByID(_ context.Context, schoolID, id string) (*domain.FeeStructure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fs := range r.structures {
		if fs.FeeStructureID == id && fs.SchoolID == schoolID {
			return &fs, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memFeeStructureRepository) ListActiveFeeStructures(_ context.Context, schoolID string) ([]domain.FeeStructure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FeeStructure
	for _, fs := range r.structures {
		if fs.SchoolID == schoolID && fs.IsActive {
			out = append(out, fs)
		}
	}
	return out, nil
}

func (r *memFeeStructureRepository) CreateActiveFeeStructure(_ context.Context, fs domain.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.structures {
		if r.structures[i].StudentID == fs.StudentID {
			r.structures[i].IsActive = false
		}
	}
	r.structures = append(r.structures, fs)
	return nil
}

func (r *memFeeStructureRepository) UpdateFeeStructure(_ context.Context, fs domain.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.structures {
		if r.structures[i].FeeStructureID == fs.FeeStructureID {
			r.structures[i] = fs
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type FeeStructureServiceTestSuite struct {
	suite.Suite
	feeRepo     *MockFeeStructureRepository
	studentRepo *MockStudentRepository
	ctx         context.Context
	student     *domain.Student
}

func (suite *FeeStructureServiceTestSuite) SetupTest() {
	suite.feeRepo = new(MockFeeStructureRepository)
	suite.studentRepo = new(MockStudentRepository)
	suite.ctx = context.Background()
	suite.student = &domain.Student{
		StudentID:   "st-1",
		SchoolID:    "school-1",
		FirstName:   "Asha",
		LastName:    "Rai",
		StudentCode: "STU-001",
	}
}

func feeRequest(studentID string, monthly int64, kind domain.ScholarshipType, scholarship int64) dto.FeeStructureRequest {
	fee := decimal.NewFromInt(monthly)
	sch := decimal.NewFromInt(scholarship)
	return dto.FeeStructureRequest{
		Student:         studentID,
		MonthlyFee:      &fee,
		Scholarship:     &sch,
		ScholarshipType: kind,
		EffectiveFrom:   &dto.Date{Time: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (suite *FeeStructureServiceTestSuite) TestCreate_Success() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-1").Return(suite.student, nil).Once()
	suite.feeRepo.On("CreateActiveFeeStructure", mock.Anything, mock.AnythingOfType("domain.FeeStructure")).Return(nil).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	fs, err := svc.CreateFeeStructure(suite.ctx, "school-1", feeRequest("st-1", 1000, domain.ScholarshipPercentage, 20))

	suite.Require().NoError(err)
	suite.NotEmpty(fs.FeeStructureID)
	suite.True(fs.IsActive)
	suite.Equal("school-1", fs.SchoolID)
	suite.Equal("Asha", fs.Student.FirstName)
	suite.True(decimal.NewFromInt(800).Equal(fs.ActualFee()))
	suite.feeRepo.AssertExpectations(suite.T())
}

func (suite *FeeStructureServiceTestSuite) TestCreate_DefaultsScholarshipType() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-1").Return(suite.student, nil).Once()
	suite.feeRepo.On("CreateActiveFeeStructure", mock.Anything, mock.AnythingOfType("domain.FeeStructure")).Return(nil).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	fee := decimal.NewFromInt(1200)
	fs, err := svc.CreateFeeStructure(suite.ctx, "school-1", dto.FeeStructureRequest{
		Student:       "st-1",
		MonthlyFee:    &fee,
		EffectiveFrom: &dto.Date{Time: time.Now()},
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ScholarshipNone, fs.ScholarshipType)
	suite.True(decimal.Zero.Equal(fs.Scholarship))
	suite.True(fee.Equal(fs.ActualFee()))
}

func (suite *FeeStructureServiceTestSuite) TestCreate_StudentOutsideSchool() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-9").Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	fs, err := svc.CreateFeeStructure(suite.ctx, "school-1", feeRequest("st-9", 1000, domain.ScholarshipNone, 0))

	suite.Nil(fs)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("Student not found in your school", apperrors.PublicMessage(err, ""))
	suite.feeRepo.AssertNotCalled(suite.T(), "CreateActiveFeeStructure", mock.Anything, mock.Anything)
}

func (suite *FeeStructureServiceTestSuite) TestSecondCreateDeactivatesFirst() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "school-1", "st-1").Return(suite.student, nil).Twice()
	repo := &memFeeStructureRepository{}
	svc := services.NewFeeStructureService(repo, suite.studentRepo)

	first, err := svc.CreateFeeStructure(suite.ctx, "school-1", feeRequest("st-1", 1000, domain.ScholarshipNone, 0))
	suite.Require().NoError(err)
	second, err := svc.CreateFeeStructure(suite.ctx, "school-1", feeRequest("st-1", 1200, domain.ScholarshipFixed, 200))
	suite.Require().NoError(err)

	active, err := svc.ListActiveFeeStructures(suite.ctx, "school-1")
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(second.FeeStructureID, active[0].FeeStructureID)
	suite.NotEqual(first.FeeStructureID, active[0].FeeStructureID)
}

func (suite *FeeStructureServiceTestSuite) TestUpdate_Success() {
	existing := &domain.FeeStructure{FeeStructureID: "fs-1", SchoolID: "school-1", StudentID: "st-1", IsActive: true}
	suite.feeRepo.On("FindFeeStructureByID", mock.Anything, "school-1", "fs-1").Return(existing, nil).Once()
	suite.feeRepo.On("UpdateFeeStructure", mock.Anything, mock.MatchedBy(func(fs domain.FeeStructure) bool {
		return fs.FeeStructureID == "fs-1" && fs.MonthlyFee.Equal(decimal.NewFromInt(2000)) && fs.IsActive
	})).Return(nil).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	fs, err := svc.UpdateFeeStructure(suite.ctx, "school-1", "fs-1", feeRequest("st-1", 2000, domain.ScholarshipFixed, 500))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1500).Equal(fs.ActualFee()))
	suite.feeRepo.AssertExpectations(suite.T())
}

func (suite *FeeStructureServiceTestSuite) TestUpdate_NotFound() {
	suite.feeRepo.On("FindFeeStructureByID", mock.Anything, "school-1", "fs-x").Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	_, err := svc.UpdateFeeStructure(suite.ctx, "school-1", "fs-x", feeRequest("st-1", 2000, domain.ScholarshipNone, 0))

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("Fee structure not found", apperrors.PublicMessage(err, ""))
}

func (suite *FeeStructureServiceTestSuite) TestUpdate_RejectsStudentChange() {
	existing := &domain.FeeStructure{FeeStructureID: "fs-1", SchoolID: "school-1", StudentID: "st-1", IsActive: true}
	suite.feeRepo.On("FindFeeStructureByID", mock.Anything, "school-1", "fs-1").Return(existing, nil).Once()
	svc := services.NewFeeStructureService(suite.feeRepo, suite.studentRepo)

	_, err := svc.UpdateFeeStructure(suite.ctx, "school-1", "fs-1", feeRequest("st-2", 2000, domain.ScholarshipNone, 0))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.feeRepo.AssertNotCalled(suite.T(), "UpdateFeeStructure", mock.Anything, mock.Anything)
}

func TestFeeStructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeStructureServiceTestSuite))
}
