package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FeeStructureRequest is the body of fee structure create and update.
type FeeStructureRequest struct {
	Student         string                 `json:"student" binding:"required"`
	MonthlyFee      *decimal.Decimal       `json:"monthlyFee" binding:"required,gte=0" swaggertype:"number"`
	Scholarship     *decimal.Decimal       `json:"scholarship" binding:"omitempty,gte=0" swaggertype:"number"`
	ScholarshipType domain.ScholarshipType `json:"scholarshipType" binding:"omitempty,oneof=none percentage fixed"`
	EffectiveFrom   *Date                  `json:"effectiveFrom" binding:"required" swaggertype:"string" format:"date"`
	EffectiveTo     *Date                  `json:"effectiveTo" swaggertype:"string" format:"date"`
	Notes           string                 `json:"notes"`
}

// ApplyTo copies the request onto fs, filling defaults for omitted optional fields.
func (r FeeStructureRequest) ApplyTo(fs *domain.FeeStructure) {
	fs.MonthlyFee = *r.MonthlyFee
	fs.Scholarship = decimal.Zero
	if r.Scholarship != nil {
		fs.Scholarship = *r.Scholarship
	}
	fs.ScholarshipType = r.ScholarshipType
	if fs.ScholarshipType == "" {
		fs.ScholarshipType = domain.ScholarshipNone
	}
	fs.EffectiveFrom = r.EffectiveFrom.Time
	fs.EffectiveTo = r.EffectiveTo.TimePtr()
	fs.Notes = r.Notes
}

type FeeStructureResponse struct {
	ID              string                  `json:"id"`
	School          string                  `json:"school"`
	Student         *StudentSummaryResponse `json:"student"`
	MonthlyFee      decimal.Decimal         `json:"monthlyFee" swaggertype:"number"`
	Scholarship     decimal.Decimal         `json:"scholarship" swaggertype:"number"`
	ScholarshipType domain.ScholarshipType  `json:"scholarshipType"`
	ActualFee       decimal.Decimal         `json:"actualFee" swaggertype:"number"`
	EffectiveFrom   time.Time               `json:"effectiveFrom"`
	EffectiveTo     *time.Time              `json:"effectiveTo"`
	IsActive        bool                    `json:"isActive"`
	Notes           string                  `json:"notes"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type GenerateInvoicesRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
}

// GenerateInvoicesResponse omits errors when every fee structure produced an invoice.
type GenerateInvoicesResponse struct {
	Message string   `json:"message"`
	Created int      `json:"created"`
	Errors  []string `json:"errors,omitempty"`
}

func ToFeeStructureResponse(fs domain.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		ID:              fs.FeeStructureID,
		School:          fs.SchoolID,
		Student:         toStudentSummaryResponse(fs.Student),
		MonthlyFee:      fs.MonthlyFee,
		Scholarship:     fs.Scholarship,
		ScholarshipType: fs.ScholarshipType,
		ActualFee:       fs.ActualFee(),
		EffectiveFrom:   fs.EffectiveFrom,
		EffectiveTo:     fs.EffectiveTo,
		IsActive:        fs.IsActive,
		Notes:           fs.Notes,
		CreatedAt:       fs.CreatedAt,
		UpdatedAt:       fs.LastUpdatedAt,
	}
}

func ToFeeStructureListResponse(list []domain.FeeStructure) []FeeStructureResponse {
	return lo.Map(list, func(fs domain.FeeStructure, _ int) FeeStructureResponse { return ToFeeStructureResponse(fs) })
}

func ToGenerateInvoicesResponse(r domain.InvoiceGenerationResult) GenerateInvoicesResponse {
	resp := GenerateInvoicesResponse{
		Message: fmt.Sprintf("Generated %d invoices", r.Created),
		Created: r.Created,
	}
	if len(r.Messages) > 0 {
		resp.Errors = r.Messages
	}
	return resp
}
