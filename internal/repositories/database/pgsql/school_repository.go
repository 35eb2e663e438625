package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSchoolRepository struct {
	BaseRepository
}

func newPgxSchoolRepository(pool *pgxpool.Pool) portsrepo.SchoolRepositoryFacade {
	return &PgxSchoolRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SchoolRepositoryFacade = (*PgxSchoolRepository)(nil)

const schoolSelect = `
	SELECT s.school_id, s.name, s.address, s.contact_email, s.contact_phone, s.is_approved,
	       s.subscription_plan_id, s.created_at, s.last_updated_at,
	       p.name, p.price_per_month, p.max_students, p.features, p.is_active
	FROM schools s
	LEFT JOIN plans p ON p.plan_id = s.subscription_plan_id
`

func scanSchool(row rowScanner) (*domain.School, error) {
	var s domain.School
	var (
		planName     *string
		planPrice    decimal.NullDecimal
		planMax      *int
		planFeatures []string
		planActive   *bool
	)
	err := row.Scan(
		&s.SchoolID,
		&s.Name,
		&s.Address,
		&s.ContactEmail,
		&s.ContactPhone,
		&s.IsApproved,
		&s.SubscriptionPlanID,
		&s.CreatedAt,
		&s.LastUpdatedAt,
		&planName,
		&planPrice,
		&planMax,
		&planFeatures,
		&planActive,
	)
	if err != nil {
		return nil, err
	}
	if s.SubscriptionPlanID != nil && planName != nil {
		s.SubscriptionPlan = &domain.Plan{
			PlanID:        *s.SubscriptionPlanID,
			Name:          *planName,
			PricePerMonth: planPrice.Decimal,
			Features:      planFeatures,
		}
		if planMax != nil {
			s.SubscriptionPlan.MaxStudents = *planMax
		}
		if planActive != nil {
			s.SubscriptionPlan.IsActive = *planActive
		}
	}
	return &s, nil
}

func (r *PgxSchoolRepository) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	school, err := scanSchool(r.Pool.QueryRow(ctx, schoolSelect+` WHERE s.school_id = $1;`, schoolID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find school "+schoolID)
	}
	return school, nil
}

func (r *PgxSchoolRepository) ListSchools(ctx context.Context, approvedOnly bool) ([]domain.School, error) {
	query := schoolSelect + ` WHERE ($1 = false OR s.is_approved) ORDER BY s.created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	schools := []domain.School{}
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		schools = append(schools, *school)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating school rows: %w", err)
	}
	return schools, nil
}

// SaveSchoolWithAdmin inserts the school and its admin in one transaction.
func (r *PgxSchoolRepository) SaveSchoolWithAdmin(ctx context.Context, school domain.School, admin domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO schools (school_id, name, address, contact_email, contact_phone, is_approved,
		                     subscription_plan_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		school.SchoolID,
		school.Name,
		school.Address,
		school.ContactEmail,
		school.ContactPhone,
		school.IsApproved,
		school.SubscriptionPlanID,
		school.CreatedAt,
		school.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to save school")
	}

	if err := insertUser(ctx, tx, admin); err != nil {
		return wrapPgError(err, "failed to save school admin")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSchoolRepository) SetSchoolApproval(ctx context.Context, schoolID string, approved bool) (*domain.School, error) {
	query := `UPDATE schools SET is_approved = $1, last_updated_at = $2 WHERE school_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, approved, time.Now().UTC(), schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to update school approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindSchoolByID(ctx, schoolID)
}
