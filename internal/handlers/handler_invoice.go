package handlers

import (
	"net/http"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type invoiceHandler struct {
	errorResponder
	invoiceService portssvc.InvoiceSvcFacade
}

func registerInvoiceRoutes(protected *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, responder errorResponder) {
	h := &invoiceHandler{errorResponder: responder, invoiceService: invoiceService}

	invoices := protected.Group("/invoices")
	{
		invoices.POST("", middleware.RequireCapability(domain.CapManageInvoices), h.createInvoice)
		invoices.GET("/school", middleware.RequireCapability(domain.CapManageInvoices), h.listSchoolInvoices)
		invoices.GET("/parent", middleware.RequireCapability(domain.CapViewChildInvoices), h.listParentInvoices)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a pending invoice for a student of the caller's school
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.MessageResponse "Invalid input"
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 404 {object} dto.MessageResponse "Student not found in your school"
// @Failure 409 {object} dto.MessageResponse "Invoice already exists for this student and term"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), identity.SchoolID, req)
	if err != nil {
		h.respondError(c, err, "create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(*invoice))
}

// listSchoolInvoices godoc
// @Summary List school invoices
// @Tags invoices
// @Produce json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /invoices/school [get]
func (h *invoiceHandler) listSchoolInvoices(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListSchoolInvoices(c.Request.Context(), identity.SchoolID)
	if err != nil {
		h.respondError(c, err, "list school invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
}

// listParentInvoices godoc
// @Summary List children's invoices
// @Description Lists the invoices of every student linked to the calling parent
// @Tags invoices
// @Produce json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 401 {object} dto.MessageResponse "Unauthorized"
// @Failure 403 {object} dto.MessageResponse "Access denied"
// @Failure 500 {object} dto.MessageResponse "Server error"
// @Security BearerAuth
// @Router /invoices/parent [get]
func (h *invoiceHandler) listParentInvoices(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListParentInvoices(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err, "list parent invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceListResponse(invoices))
}
