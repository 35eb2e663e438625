package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// StudentReader defines read operations for students. Lookups taking a schoolID only
// match students of that school.
type StudentReader interface {
	FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error)
	FindStudentByCode(ctx context.Context, schoolID, studentCode string) (*domain.Student, error)

	// ListStudentsBySchool lists a school's students newest first with their parent joined.
	ListStudentsBySchool(ctx context.Context, schoolID string) ([]domain.Student, error)

	// ListStudentsByParent lists the children linked to a parent within a school.
	ListStudentsByParent(ctx context.Context, schoolID, parentID string) ([]domain.Student, error)
}

// StudentWriter defines write operations for students.
type StudentWriter interface {
	// SaveStudent persists a new student. A taken student code yields apperrors.ErrDuplicate.
	SaveStudent(ctx context.Context, student domain.Student) error

	// UpdateStudent overwrites the editable fields of a student.
	UpdateStudent(ctx context.Context, student domain.Student) error

	// DeleteStudent removes a student. A student still referenced by billing records
	// yields apperrors.ErrInvalidState.
	DeleteStudent(ctx context.Context, schoolID, studentID string) error

	// LinkParent sets the parent of a student that has none or already has parentID. A student
	// linked to a different parent yields apperrors.ErrDuplicate.
	LinkParent(ctx context.Context, studentID, parentID string) error
}

// StudentRepositoryFacade combines all student-related repository interfaces
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
}
