package handlers

import (
	"github.com/SscSPs/school_fee_app/cmd/docs"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/SscSPs/school_fee_app/internal/payments"
	"github.com/SscSPs/school_fee_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

const apiBasePath = "/api"

// RouteDeps carries the collaborators routes need besides the services.
type RouteDeps struct {
	LoginLimiter    *limiter.Limiter
	WebhookVerifier payments.SignatureVerifier
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	dto.RegisterValidators()

	responder := errorResponder{diagnostics: !cfg.IsProduction}

	public := r.Group(apiBasePath)
	public.GET("/health", getHealth)

	protected := public.Group("", middleware.AuthMiddleware(cfg.JWTSecret, services.AccountStatus))

	registerAuthRoutes(public, protected, services.Auth, deps.LoginLimiter, responder)
	registerSchoolRoutes(public, protected, services.School, responder)
	registerPlanRoutes(protected, services.Plan, responder)
	registerStudentRoutes(protected, services.Student, services.Parent, responder)
	registerFeeStructureRoutes(protected, services.FeeStructure, services.InvoiceGenerator, responder)
	registerInvoiceRoutes(protected, services.Invoice, responder)
	registerPaymentRoutes(public, protected, services.Payment, deps.WebhookVerifier, responder)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = apiBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
