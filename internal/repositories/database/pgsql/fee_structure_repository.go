package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFeeStructureRepository struct {
	BaseRepository
}

func newPgxFeeStructureRepository(pool *pgxpool.Pool) portsrepo.FeeStructureRepositoryFacade {
	return &PgxFeeStructureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeeStructureRepositoryFacade = (*PgxFeeStructureRepository)(nil)

const feeStructureSelect = `
	SELECT f.fee_structure_id, f.school_id, f.student_id, f.monthly_fee, f.scholarship,
	       f.scholarship_type, f.effective_from, f.effective_to, f.is_active, f.notes,
	       f.created_at, f.last_updated_at,
	       st.first_name, st.last_name, st.student_code, st.class_name, st.section
	FROM fee_structures f
	JOIN students st ON st.student_id = f.student_id
`

func scanFeeStructure(row rowScanner) (*domain.FeeStructure, error) {
	var fs domain.FeeStructure
	var scholarshipType string
	summary := domain.StudentSummary{}
	err := row.Scan(
		&fs.FeeStructureID,
		&fs.SchoolID,
		&fs.StudentID,
		&fs.MonthlyFee,
		&fs.Scholarship,
		&scholarshipType,
		&fs.EffectiveFrom,
		&fs.EffectiveTo,
		&fs.IsActive,
		&fs.Notes,
		&fs.CreatedAt,
		&fs.LastUpdatedAt,
		&summary.FirstName,
		&summary.LastName,
		&summary.StudentCode,
		&summary.ClassName,
		&summary.Section,
	)
	if err != nil {
		return nil, err
	}
	fs.ScholarshipType = domain.ScholarshipType(scholarshipType)
	summary.StudentID = fs.StudentID
	fs.Student = &summary
	return &fs, nil
}

func (r *PgxFeeStructureRepository) FindFeeStructureByID(ctx context.Context, schoolID, feeStructureID string) (*domain.FeeStructure, error) {
	query := feeStructureSelect + ` WHERE f.school_id = $1 AND f.fee_structure_id = $2;`
	fs, err := scanFeeStructure(r.Pool.QueryRow(ctx, query, schoolID, feeStructureID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find fee structure "+feeStructureID)
	}
	return fs, nil
}

func (r *PgxFeeStructureRepository) ListActiveFeeStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	query := feeStructureSelect + ` WHERE f.school_id = $1 AND f.is_active ORDER BY f.created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee structures: %w", err)
	}
	defer rows.Close()

	list := []domain.FeeStructure{}
	for rows.Next() {
		fs, err := scanFeeStructure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee structure row: %w", err)
		}
		list = append(list, *fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee structure rows: %w", err)
	}
	return list, nil
}

// CreateActiveFeeStructure locks the student row so concurrent creates for the same student
// serialize, deactivates every active structure of the student, then inserts fs.
//
// Deactivation is keyed on the student alone and not on the school.
func (r *PgxFeeStructureRepository) CreateActiveFeeStructure(ctx context.Context, fs domain.FeeStructure) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var lockedID string
	err = tx.QueryRow(ctx, `SELECT student_id FROM students WHERE student_id = $1 FOR UPDATE;`, fs.StudentID).Scan(&lockedID)
	if err != nil {
		return notFoundOr(err, "failed to lock student "+fs.StudentID)
	}

	_, err = tx.Exec(ctx,
		`UPDATE fee_structures SET is_active = false, last_updated_at = $1 WHERE student_id = $2 AND is_active;`,
		fs.CreatedAt, fs.StudentID)
	if err != nil {
		return fmt.Errorf("failed to deactivate fee structures: %w", err)
	}

	query := `
		INSERT INTO fee_structures (fee_structure_id, school_id, student_id, monthly_fee, scholarship,
		                            scholarship_type, effective_from, effective_to, is_active, notes,
		                            created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		fs.FeeStructureID,
		fs.SchoolID,
		fs.StudentID,
		fs.MonthlyFee,
		fs.Scholarship,
		string(fs.ScholarshipType),
		fs.EffectiveFrom,
		fs.EffectiveTo,
		fs.Notes,
		fs.CreatedAt,
		fs.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to insert fee structure")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFeeStructureRepository) UpdateFeeStructure(ctx context.Context, fs domain.FeeStructure) error {
	query := `
		UPDATE fee_structures
		SET monthly_fee = $1, scholarship = $2, scholarship_type = $3, effective_from = $4,
		    effective_to = $5, notes = $6, last_updated_at = $7
		WHERE fee_structure_id = $8 AND school_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		fs.MonthlyFee,
		fs.Scholarship,
		string(fs.ScholarshipType),
		fs.EffectiveFrom,
		fs.EffectiveTo,
		fs.Notes,
		fs.LastUpdatedAt,
		fs.FeeStructureID,
		fs.SchoolID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee structure: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
