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

// studentHandler handles the school admin's student roster and the parent's children.
type studentHandler struct {
	errorResponder
	studentService portssvc.StudentSvcFacade
	parentService  portssvc.ParentSvcFacade
}

func newStudentHandler(ss portssvc.StudentSvcFacade, ps portssvc.ParentSvcFacade, responder errorResponder) *studentHandler {
	return &studentHandler{errorResponder: responder, studentService: ss, parentService: ps}
}

// registerStudentRoutes registers roster management and the parent child-linking routes.
func registerStudentRoutes(protected *gin.RouterGroup, studentService portssvc.StudentSvcFacade, parentService portssvc.ParentSvcFacade, responder errorResponder) {
	h := newStudentHandler(studentService, parentService, responder)

	students := protected.Group("/students", middleware.RequireCapability(domain.CapManageStudents))
	{
		students.GET("", h.listStudents)
		students.POST("", h.createStudent)
		students.PUT("/:id", h.updateStudent)
		students.DELETE("/:id", h.deleteStudent)
	}

	parents := protected.Group("/parents", middleware.RequireCapability(domain.CapManageChildren))
	{
		parents.GET("/children", h.listChildren)
		parents.POST("/link-child", h.linkChild)
	}
}

// listStudents godoc
// @Summary List students
// @Description Lists the students of the caller's school
// @Tags students
// @Produce json
// @Success 200 {array} dto.StudentResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), identity.SchoolID)
	if err != nil {
		h.respondError(c, err, "list students")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentListResponse(students))
}

// createStudent godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.StudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Parent not found"
// @Failure 409 {object} dto.MessageResponse "Student code already exists"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), identity.SchoolID, req)
	if err != nil {
		h.respondError(c, err, "create student")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Student created", slog.String("student_id", student.StudentID))
	c.JSON(http.StatusCreated, dto.ToStudentResponse(*student))
}

// updateStudent godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param student body dto.StudentRequest true "Student details"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Student not found"
// @Failure 409 {object} dto.MessageResponse "Student code already exists"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), identity.SchoolID, c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "update student")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(*student))
}

// deleteStudent godoc
// @Summary Delete a student
// @Description Deletes a student that has no invoices or fee structures
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Student not found"
// @Failure 409 {object} dto.MessageResponse "Student still has billing history"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), identity.SchoolID, c.Param("id")); err != nil {
		h.respondError(c, err, "delete student")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// listChildren godoc
// @Summary List own children
// @Description Lists the students linked to the calling parent
// @Tags parents
// @Produce json
// @Success 200 {array} dto.StudentResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /parents/children [get]
func (h *studentHandler) listChildren(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	children, err := h.parentService.ListChildren(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err, "list children")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentListResponse(children))
}

// linkChild godoc
// @Summary Link a child
// @Description Links the calling parent to the student holding the given code in the parent's school
// @Tags parents
// @Accept json
// @Produce json
// @Param link body dto.LinkChildRequest true "Student code"
// @Success 200 {object} dto.LinkChildResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Student not found with this code"
// @Failure 409 {object} dto.MessageResponse "Student is already linked to another parent"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /parents/link-child [post]
func (h *studentHandler) linkChild(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.LinkChildRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.parentService.LinkChild(c.Request.Context(), identity, req.StudentCode)
	if err != nil {
		h.respondError(c, err, "link child")
		return
	}
	c.JSON(http.StatusOK, dto.LinkChildResponse{Message: "Child linked successfully", Student: dto.ToStudentResponse(*student)})
}
