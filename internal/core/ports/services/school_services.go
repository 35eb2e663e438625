package services

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/dto"
)

// SchoolReaderSvc defines read operations on schools.
type SchoolReaderSvc interface {
	// ListApprovedSchools lists the schools parents may register against.
	ListApprovedSchools(ctx context.Context) ([]domain.School, error)

	ListSchools(ctx context.Context) ([]domain.School, error)

	// GetSchoolDetails returns the school with its roster, invoices and fee statistics.
	GetSchoolDetails(ctx context.Context, schoolID string) (*domain.SchoolDetails, error)

	GetSchool(ctx context.Context, schoolID string) (*domain.School, error)
}

// SchoolModerationSvc defines super admin moderation of schools.
type SchoolModerationSvc interface {
	ApproveSchool(ctx context.Context, schoolID string) (*domain.School, error)
	RejectSchool(ctx context.Context, schoolID string) (*domain.School, error)
}

// SchoolNotificationSvc prepares pending-fee reminders. Nothing is delivered.
type SchoolNotificationSvc interface {
	PrepareParentNotifications(ctx context.Context, schoolID string) (*domain.ParentNotificationBatch, error)
	PrepareSchoolNotification(ctx context.Context, schoolID string) (*domain.SchoolNotification, error)
}

// SchoolSvcFacade combines all school-related service interfaces
type SchoolSvcFacade interface {
	SchoolReaderSvc
	SchoolModerationSvc
	SchoolNotificationSvc
}

// PlanSvcFacade defines operations on subscription plans.
type PlanSvcFacade interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error)
}
