package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// SchoolReader defines read operations for schools.
type SchoolReader interface {
	// FindSchoolByID retrieves a school with its subscription plan.
	FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error)

	// ListSchools lists schools newest first, optionally only the approved ones.
	ListSchools(ctx context.Context, approvedOnly bool) ([]domain.School, error)
}

// SchoolWriter defines write operations for schools.
type SchoolWriter interface {
	// SaveSchoolWithAdmin persists a new school together with its admin account atomically.
	SaveSchoolWithAdmin(ctx context.Context, school domain.School, admin domain.User) error

	// SetSchoolApproval flips the approval flag and returns the updated school.
	SetSchoolApproval(ctx context.Context, schoolID string, approved bool) (*domain.School, error)
}

// SchoolRepositoryFacade combines all school-related repository interfaces
type SchoolRepositoryFacade interface {
	SchoolReader
	SchoolWriter
}
