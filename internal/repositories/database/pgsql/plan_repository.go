package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPlanRepository struct {
	BaseRepository
}

func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (plan_id, name, price_per_month, max_students, features, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		plan.PlanID,
		plan.Name,
		plan.PricePerMonth,
		plan.MaxStudents,
		plan.Features,
		plan.IsActive,
		plan.CreatedAt,
		plan.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to save plan")
	}
	return nil
}

func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT plan_id, name, price_per_month, max_students, features, is_active, created_at, last_updated_at
		FROM plans
		ORDER BY price_per_month, name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(
			&p.PlanID,
			&p.Name,
			&p.PricePerMonth,
			&p.MaxStudents,
			&p.Features,
			&p.IsActive,
			&p.CreatedAt,
			&p.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}
	return plans, nil
}
