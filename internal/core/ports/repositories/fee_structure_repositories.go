package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// FeeStructureReader defines read operations for fee structures.
type FeeStructureReader interface {
	FindFeeStructureByID(ctx context.Context, schoolID, feeStructureID string) (*domain.FeeStructure, error)

	// ListActiveFeeStructures lists the active structures of a school newest first with the
	// student summary joined.
	ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error)
}

// FeeStructureWriter defines write operations for fee structures.
type FeeStructureWriter interface {
	// CreateActiveFeeStructure deactivates every active structure of the student and inserts
	// fs as the new active one, in a single transaction serialized per student.
	CreateActiveFeeStructure(ctx context.Context, fs domain.FeeStructure) error

	// UpdateFeeStructure overwrites the editable fields of a structure.
	UpdateFeeStructure(ctx context.Context, fs domain.FeeStructure) error
}

// FeeStructureRepositoryFacade combines all fee-structure-related repository interfaces
type FeeStructureRepositoryFacade interface {
	FeeStructureReader
	FeeStructureWriter
}
