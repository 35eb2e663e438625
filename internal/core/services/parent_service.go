package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
)

// parentService implements the ParentSvcFacade interface
type parentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
}

func NewParentService(studentRepo portsrepo.StudentRepositoryFacade) portssvc.ParentSvcFacade {
	return &parentService{studentRepo: studentRepo}
}

var _ portssvc.ParentSvcFacade = (*parentService)(nil)

// LinkChild links the caller to the student holding studentCode in the caller's school.
func (s *parentService) LinkChild(ctx context.Context, parent domain.Identity, studentCode string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByCode(ctx, parent.SchoolID, studentCode)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "Student not found with this code", "Failed to find student by code")
	}

	if student.ParentID != nil && *student.ParentID != parent.UserID {
		return nil, apperrors.NewConflictError("Student is already linked to another parent")
	}

	if err := s.studentRepo.LinkParent(ctx, student.StudentID, parent.UserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewConflictError("Student is already linked to another parent")
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError("Student not found with this code")
		}
		s.LogError(ctx, err, "Failed to link child", slog.String("student_id", student.StudentID))
		return nil, err
	}

	student.ParentID = &parent.UserID
	s.LogInfo(ctx, "Child linked", slog.String("student_id", student.StudentID), slog.String("parent_id", parent.UserID))
	return student, nil
}

func (s *parentService) ListChildren(ctx context.Context, parent domain.Identity) ([]domain.Student, error) {
	children, err := s.studentRepo.ListStudentsByParent(ctx, parent.SchoolID, parent.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list children", slog.String("parent_id", parent.UserID))
		return nil, err
	}
	if children == nil {
		return []domain.Student{}, nil
	}
	return children, nil
}
