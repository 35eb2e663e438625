package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// schoolHandler handles school listings, moderation and fee reminders.
type schoolHandler struct {
	errorResponder
	schoolService portssvc.SchoolSvcFacade
}

func newSchoolHandler(ss portssvc.SchoolSvcFacade, responder errorResponder) *schoolHandler {
	return &schoolHandler{errorResponder: responder, schoolService: ss}
}

// registerSchoolRoutes registers the public approved-schools listing, the super admin
// moderation routes and the school admin's own-school route.
func registerSchoolRoutes(public, protected *gin.RouterGroup, schoolService portssvc.SchoolSvcFacade, responder errorResponder) {
	h := newSchoolHandler(schoolService, responder)

	public.GET("/schools/approved", h.listApprovedSchools)

	protected.GET("/schools/my-school", middleware.RequireCapability(domain.CapViewOwnSchool), h.getMySchool)

	schools := protected.Group("/schools", middleware.RequireCapability(domain.CapManageSchools))
	{
		schools.GET("", h.listSchools)
		schools.GET("/:id/details", h.getSchoolDetails)
		schools.PATCH("/:id/approve", h.approveSchool)
		schools.PATCH("/:id/reject", h.rejectSchool)
		schools.POST("/:id/notify-parents", h.notifyParents)
		schools.POST("/:id/notify-school", h.notifySchool)
	}
}

// listApprovedSchools godoc
// @Summary List approved schools
// @Description Lists the schools parents may register against
// @Tags schools
// @Produce json
// @Success 200 {array} dto.SchoolResponse
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Router /schools/approved [get]
func (h *schoolHandler) listApprovedSchools(c *gin.Context) {
	schools, err := h.schoolService.ListApprovedSchools(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "list approved schools")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolListResponse(schools))
}

// listSchools godoc
// @Summary List all schools
// @Description Lists every school, approved or not
// @Tags schools
// @Produce json
// @Success 200 {array} dto.SchoolResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools [get]
func (h *schoolHandler) listSchools(c *gin.Context) {
	schools, err := h.schoolService.ListSchools(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "list schools")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolListResponse(schools))
}

// getSchoolDetails godoc
// @Summary Get school details
// @Description Returns a school with its students, invoices and fee statistics
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.SchoolDetailsResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/{id}/details [get]
func (h *schoolHandler) getSchoolDetails(c *gin.Context) {
	details, err := h.schoolService.GetSchoolDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "get school details")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolDetailsResponse(*details))
}

// approveSchool godoc
// @Summary Approve a school
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.SchoolApprovalResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/{id}/approve [patch]
func (h *schoolHandler) approveSchool(c *gin.Context) {
	school, err := h.schoolService.ApproveSchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "approve school")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("School approved", slog.String("school_id", school.SchoolID))
	c.JSON(http.StatusOK, dto.SchoolApprovalResponse{Message: "School approved successfully", School: dto.ToSchoolResponse(*school)})
}

// rejectSchool godoc
// @Summary Reject a school
// @Description Marks a school as not approved
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.SchoolApprovalResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/{id}/reject [patch]
func (h *schoolHandler) rejectSchool(c *gin.Context) {
	school, err := h.schoolService.RejectSchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "reject school")
		return
	}
	c.JSON(http.StatusOK, dto.SchoolApprovalResponse{Message: "School rejected", School: dto.ToSchoolResponse(*school)})
}

// notifyParents godoc
// @Summary Prepare parent reminders
// @Description Groups the school's pending invoices per parent. Nothing is delivered.
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.NotifyParentsResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/{id}/notify-parents [post]
func (h *schoolHandler) notifyParents(c *gin.Context) {
	batch, err := h.schoolService.PrepareParentNotifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "prepare parent notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotifyParentsResponse(*batch))
}

// notifySchool godoc
// @Summary Prepare school admin reminder
// @Description Summarises the school's pending invoices for its administrator. Nothing is delivered.
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} dto.NotifySchoolResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School or school admin not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/{id}/notify-school [post]
func (h *schoolHandler) notifySchool(c *gin.Context) {
	notification, err := h.schoolService.PrepareSchoolNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "prepare school notification")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotifySchoolResponse(*notification))
}

// getMySchool godoc
// @Summary Get own school
// @Description Returns the school the calling administrator belongs to
// @Tags schools
// @Produce json
// @Success 200 {object} dto.SchoolResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /schools/my-school [get]
func (h *schoolHandler) getMySchool(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	school, err := h.schoolService.GetSchool(c.Request.Context(), identity.SchoolID)
	if err != nil {
		h.respondError(c, err, "get own school")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchoolResponse(*school))
}
