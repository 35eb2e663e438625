package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// PlanRepositoryFacade defines persistence operations for subscription plans.
type PlanRepositoryFacade interface {
	SavePlan(ctx context.Context, plan domain.Plan) error
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}
