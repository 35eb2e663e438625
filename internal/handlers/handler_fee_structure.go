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

// feeStructureHandler handles the fee structure registry and monthly invoice generation.
type feeStructureHandler struct {
	errorResponder
	feeStructureService portssvc.FeeStructureSvcFacade
	generator           portssvc.InvoiceGeneratorSvc
}

func newFeeStructureHandler(fs portssvc.FeeStructureSvcFacade, gen portssvc.InvoiceGeneratorSvc, responder errorResponder) *feeStructureHandler {
	return &feeStructureHandler{errorResponder: responder, feeStructureService: fs, generator: gen}
}

func registerFeeStructureRoutes(protected *gin.RouterGroup, fs portssvc.FeeStructureSvcFacade, gen portssvc.InvoiceGeneratorSvc, responder errorResponder) {
	h := newFeeStructureHandler(fs, gen, responder)

	feeStructures := protected.Group("/fee-structures", middleware.RequireCapability(domain.CapManageFeeStructures))
	{
		feeStructures.GET("", h.listFeeStructures)
		feeStructures.POST("", h.createFeeStructure)
		feeStructures.PUT("/:id", h.updateFeeStructure)
		feeStructures.POST("/generate-invoices", h.generateInvoices)
	}
}

// listFeeStructures godoc
// @Summary List active fee structures
// @Description Lists the active fee structures of the caller's school
// @Tags fee-structures
// @Produce json
// @Success 200 {array} dto.FeeStructureResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /fee-structures [get]
func (h *feeStructureHandler) listFeeStructures(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	list, err := h.feeStructureService.ListActiveFeeStructures(c.Request.Context(), identity.SchoolID)
	if err != nil {
		h.respondError(c, err, "list fee structures")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeStructureListResponse(list))
}

// createFeeStructure godoc
// @Summary Create a fee structure
// @Description Creates the student's active fee structure, deactivating any previous one
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param feeStructure body dto.FeeStructureRequest true "Fee structure"
// @Success 201 {object} dto.FeeStructureResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Student not found in your school"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /fee-structures [post]
func (h *feeStructureHandler) createFeeStructure(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.FeeStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	fs, err := h.feeStructureService.CreateFeeStructure(c.Request.Context(), identity.SchoolID, req)
	if err != nil {
		h.respondError(c, err, "create fee structure")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fee structure created",
		slog.String("fee_structure_id", fs.FeeStructureID),
		slog.String("student_id", fs.StudentID))
	c.JSON(http.StatusCreated, dto.ToFeeStructureResponse(*fs))
}

// updateFeeStructure godoc
// @Summary Update a fee structure
// @Description Edits a fee structure in place. The student cannot be changed.
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param id path string true "Fee structure ID"
// @Param feeStructure body dto.FeeStructureRequest true "Fee structure"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Fee structure not found"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /fee-structures/{id} [put]
func (h *feeStructureHandler) updateFeeStructure(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.FeeStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	fs, err := h.feeStructureService.UpdateFeeStructure(c.Request.Context(), identity.SchoolID, c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "update fee structure")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(*fs))
}

// generateInvoices godoc
// @Summary Generate monthly invoices
// @Description Bills every active fee structure of the caller's school for one month. Structures that already have an invoice for the term are reported in errors.
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param period body dto.GenerateInvoicesRequest true "Billing month and year"
// @Success 200 {object} dto.GenerateInvoicesResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /fee-structures/generate-invoices [post]
func (h *feeStructureHandler) generateInvoices(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.GenerateInvoicesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.generator.GenerateMonthlyInvoices(c.Request.Context(), identity.SchoolID, req.Month, req.Year)
	if err != nil {
		h.respondError(c, err, "generate invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToGenerateInvoicesResponse(*result))
}
