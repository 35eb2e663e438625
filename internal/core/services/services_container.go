package services

import (
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/payments"
	"github.com/SscSPs/school_fee_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.SchoolRepo)
	container.AccountStatus = NewAccountStatusService(repos.UserRepo, cfg.AccountStatusCacheTTL)
	container.School = NewSchoolService(
		repos.SchoolRepo,
		repos.StudentRepo,
		repos.InvoiceRepo,
		repos.UserRepo,
		cfg.ApprovedSchoolsCacheTTL,
	)
	container.Plan = NewPlanService(repos.PlanRepo)

	container.Student = NewStudentService(repos.StudentRepo, repos.UserRepo)
	container.Parent = NewParentService(repos.StudentRepo)

	container.FeeStructure = NewFeeStructureService(repos.FeeStructureRepo, repos.StudentRepo)
	container.InvoiceGenerator = NewInvoiceGenerator(repos.FeeStructureRepo, repos.InvoiceRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.StudentRepo)

	container.Payment = NewPaymentService(
		repos.InvoiceRepo,
		repos.StudentRepo,
		repos.TransactionRepo,
		payments.RedirectBuilder{BaseURL: cfg.PaymentRedirectBaseURL},
	)

	return container
}
