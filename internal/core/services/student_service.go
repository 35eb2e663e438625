package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/google/uuid"
)

// studentService implements the StudentSvcFacade interface
type studentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewStudentService creates the roster service used by school admins.
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade, userRepo portsrepo.UserReader) portssvc.StudentSvcFacade {
	return &studentService{studentRepo: studentRepo, userRepo: userRepo}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

func (s *studentService) ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error) {
	students, err := s.studentRepo.ListStudentsBySchool(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students", slog.String("school_id", schoolID))
		return nil, err
	}
	if students == nil {
		return []domain.Student{}, nil
	}
	return students, nil
}

func (s *studentService) CreateStudent(ctx context.Context, schoolID string, req dto.StudentRequest) (*domain.Student, error) {
	parentID := req.ParentID()
	if err := s.validateParent(ctx, schoolID, parentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	student := domain.Student{
		StudentID:   uuid.NewString(),
		SchoolID:    schoolID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		StudentCode: req.StudentCode,
		ClassName:   req.ClassName,
		Section:     req.Section,
		ParentID:    parentID,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Student code already exists")
		}
		s.LogError(ctx, err, "Failed to save student", slog.String("school_id", schoolID))
		return nil, err
	}

	s.LogInfo(ctx, "Student created", slog.String("student_id", student.StudentID), slog.String("school_id", schoolID))
	return s.reload(ctx, schoolID, student.StudentID)
}

func (s *studentService) UpdateStudent(ctx context.Context, schoolID, studentID string, req dto.StudentRequest) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Student not found", "Failed to find student", slog.String("student_id", studentID))
	}

	parentID := req.ParentID()
	if err := s.validateParent(ctx, schoolID, parentID); err != nil {
		return nil, err
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.StudentCode = req.StudentCode
	student.ClassName = req.ClassName
	student.Section = req.Section
	student.ParentID = parentID
	student.LastUpdatedAt = time.Now().UTC()

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Student code already exists")
		}
		s.LogError(ctx, err, "Failed to update student", slog.String("student_id", studentID))
		return nil, err
	}

	return s.reload(ctx, schoolID, studentID)
}

func (s *studentService) DeleteStudent(ctx context.Context, schoolID, studentID string) error {
	if _, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID); err != nil {
		return s.notFoundAs(ctx, err, "Student not found", "Failed to find student", slog.String("student_id", studentID))
	}

	if err := s.studentRepo.DeleteStudent(ctx, schoolID, studentID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			return apperrors.NewInvalidStateError("Student has invoices or fee structures and cannot be deleted")
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Student not found")
		}
		s.LogError(ctx, err, "Failed to delete student", slog.String("student_id", studentID))
		return err
	}

	s.LogInfo(ctx, "Student deleted", slog.String("student_id", studentID))
	return nil
}

// validateParent checks that parentID, when set, is a parent account of the school.
func (s *studentService) validateParent(ctx context.Context, schoolID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, *parentID)
	if err != nil {
		return s.notFoundAs(ctx, err, "Parent not found", "Failed to find parent", slog.String("parent_id", *parentID))
	}
	if user.Role != domain.RoleParent || user.SchoolID == nil || *user.SchoolID != schoolID {
		return apperrors.NewValidationFailedError("Parent must be a parent account of this school")
	}
	return nil
}

func (s *studentService) reload(ctx context.Context, schoolID, studentID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload student", slog.String("student_id", studentID))
		return nil, err
	}
	return student, nil
}
