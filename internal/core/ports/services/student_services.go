package services

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/dto"
)

// StudentSvcFacade defines roster management for a school admin. Every operation is scoped
// to schoolID.
type StudentSvcFacade interface {
	ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error)
	CreateStudent(ctx context.Context, schoolID string, req dto.StudentRequest) (*domain.Student, error)
	UpdateStudent(ctx context.Context, schoolID, studentID string, req dto.StudentRequest) (*domain.Student, error)
	DeleteStudent(ctx context.Context, schoolID, studentID string) error
}

// ParentSvcFacade defines a parent's view of their children.
type ParentSvcFacade interface {
	// LinkChild links the caller to the student holding studentCode in the caller's school.
	LinkChild(ctx context.Context, parent domain.Identity, studentCode string) (*domain.Student, error)

	ListChildren(ctx context.Context, parent domain.Identity) ([]domain.Student, error)
}
