package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/google/uuid"
)

type planService struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
}

func NewPlanService(planRepo portsrepo.PlanRepositoryFacade) portssvc.PlanSvcFacade {
	return &planService{planRepo: planRepo}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans")
		return nil, err
	}
	if plans == nil {
		return []domain.Plan{}, nil
	}
	return plans, nil
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error) {
	now := time.Now().UTC()
	plan := domain.Plan{
		PlanID:        uuid.NewString(),
		Name:          req.Name,
		PricePerMonth: *req.PricePerMonth,
		MaxStudents:   *req.MaxStudents,
		Features:      req.Features,
		IsActive:      req.IsActive == nil || *req.IsActive,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if plan.Features == nil {
		plan.Features = []string{}
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save plan", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Plan created", slog.String("plan_id", plan.PlanID))
	return &plan, nil
}
