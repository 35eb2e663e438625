package handlers

import (
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type planHandler struct {
	errorResponder
	planService portssvc.PlanSvcFacade
}

func registerPlanRoutes(protected *gin.RouterGroup, planService portssvc.PlanSvcFacade, responder errorResponder) {
	h := &planHandler{errorResponder: responder, planService: planService}

	plans := protected.Group("/plans", middleware.RequireCapability(domain.CapManagePlans))
	{
		plans.GET("", h.listPlans)
		plans.POST("", h.createPlan)
	}
}

// listPlans godoc
// @Summary List subscription plans
// @Tags plans
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanListResponse(plans))
}

// createPlan godoc
// @Summary Create a subscription plan
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(*plan))
}
