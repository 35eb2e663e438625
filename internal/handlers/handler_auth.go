package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles sign-in, self registration and password changes.
type authHandler struct {
	errorResponder
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade, responder errorResponder) *authHandler {
	return &authHandler{errorResponder: responder, authService: as}
}

// registerAuthRoutes sets up the public authentication routes and the authenticated password
// change. Login is rate limited per client IP.
func registerAuthRoutes(public, protected *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter, responder errorResponder) {
	h := newAuthHandler(authService, responder)

	auth := public.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
		auth.POST("/register-school", h.registerSchool)
		auth.POST("/register-parent", h.registerParent)
	}

	protected.POST("/auth/change-password", middleware.RequireCapability(domain.CapChangePassword), h.changePassword)
}

// login godoc
// @Summary Sign in
// @Description Verifies credentials and returns a session token with the user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Invalid email or password"
// @Failure 403 {object} dto.MessageResponse "Account deactivated or school not approved"
// @Failure 429 {object} dto.MessageResponse "Too many requests"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToUserResponse(result.User, result.School),
	})
}

// registerSchool godoc
// @Summary Register a school
// @Description Creates an unapproved school together with its administrator account
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterSchoolRequest true "School and admin details"
// @Success 201 {object} dto.RegisterSchoolResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 409 {object} dto.MessageResponse "Email already registered"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Router /auth/register-school [post]
func (h *authHandler) registerSchool(c *gin.Context) {
	var req dto.RegisterSchoolRequest
	if !bindJSON(c, &req) {
		return
	}

	school, err := h.authService.RegisterSchool(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "register school")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("School registered", slog.String("school_id", school.SchoolID))
	c.JSON(http.StatusCreated, dto.RegisterSchoolResponse{
		Message:  "School registered successfully. Awaiting approval.",
		SchoolID: school.SchoolID,
	})
}

// registerParent godoc
// @Summary Register a parent
// @Description Creates a parent account linked to an approved school
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterParentRequest true "Parent details"
// @Success 201 {object} dto.RegisterParentResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 403 {object} dto.MessageResponse "School not approved"
// @Failure 404 {object} dto.MessageResponse "School not found"
// @Failure 409 {object} dto.MessageResponse "Email already registered"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Router /auth/register-parent [post]
func (h *authHandler) registerParent(c *gin.Context) {
	var req dto.RegisterParentRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.RegisterParent(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "register parent")
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterParentResponse{
		Message: "Parent registered successfully",
		UserID:  user.UserID,
	})
}

// changePassword godoc
// @Summary Change password
// @Description Replaces the caller's password after checking the current one
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Current password is incorrect"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Authentication required"})
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.respondError(c, err, "change password")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed successfully"})
}
