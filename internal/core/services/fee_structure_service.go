package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/google/uuid"
)

// feeStructureService implements the FeeStructureSvcFacade interface
type feeStructureService struct {
	BaseService
	feeStructureRepo portsrepo.FeeStructureRepositoryFacade
	studentRepo      portsrepo.StudentReader
}

func NewFeeStructureService(feeStructureRepo portsrepo.FeeStructureRepositoryFacade, studentRepo portsrepo.StudentReader) portssvc.FeeStructureSvcFacade {
	return &feeStructureService{feeStructureRepo: feeStructureRepo, studentRepo: studentRepo}
}

var _ portssvc.FeeStructureSvcFacade = (*feeStructureService)(nil)

// CreateFeeStructure records a new active structure for a student of the school. Any
// structure previously active for the student is deactivated in the same transaction.
func (s *feeStructureService) CreateFeeStructure(ctx context.Context, schoolID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, req.Student)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Student not found in your school", "Failed to find student", slog.String("student_id", req.Student))
	}

	now := time.Now().UTC()
	summary := student.Summary()
	fs := domain.FeeStructure{
		FeeStructureID: uuid.NewString(),
		SchoolID:       schoolID,
		StudentID:      student.StudentID,
		Student:        &summary,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	req.ApplyTo(&fs)

	if err := s.feeStructureRepo.CreateActiveFeeStructure(ctx, fs); err != nil {
		s.LogError(ctx, err, "Failed to create fee structure", slog.String("student_id", student.StudentID))
		return nil, err
	}

	s.LogInfo(ctx, "Fee structure created",
		slog.String("fee_structure_id", fs.FeeStructureID),
		slog.String("student_id", student.StudentID),
		slog.String("actual_fee", fs.ActualFee().String()))
	return &fs, nil
}

// UpdateFeeStructure overwrites a structure of the school in place. The active flag and the
// student are left untouched.
func (s *feeStructureService) UpdateFeeStructure(ctx context.Context, schoolID, feeStructureID string, req dto.FeeStructureRequest) (*domain.FeeStructure, error) {
	fs, err := s.feeStructureRepo.FindFeeStructureByID(ctx, schoolID, feeStructureID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Fee structure not found", "Failed to find fee structure", slog.String("fee_structure_id", feeStructureID))
	}
	if req.Student != fs.StudentID {
		return nil, apperrors.NewValidationFailedError("Fee structure student cannot be changed")
	}

	req.ApplyTo(fs)
	fs.LastUpdatedAt = time.Now().UTC()

	if err := s.feeStructureRepo.UpdateFeeStructure(ctx, *fs); err != nil {
		return nil, s.notFoundAs(ctx, err, "Fee structure not found", "Failed to update fee structure", slog.String("fee_structure_id", feeStructureID))
	}

	return fs, nil
}

func (s *feeStructureService) ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	list, err := s.feeStructureRepo.ListActiveFeeStructures(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee structures", slog.String("school_id", schoolID))
		return nil, err
	}
	if list == nil {
		return []domain.FeeStructure{}, nil
	}
	return list, nil
}
