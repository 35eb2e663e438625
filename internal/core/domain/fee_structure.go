package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScholarshipType determines how FeeStructure.Scholarship is applied to the monthly fee.
type ScholarshipType string

const (
	ScholarshipNone       ScholarshipType = "none"
	ScholarshipPercentage ScholarshipType = "percentage"
	ScholarshipFixed      ScholarshipType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// ComputeActualFee applies a scholarship to a monthly fee.
//
//   - percentage: monthlyFee - monthlyFee*scholarship/100 (not clamped)
//   - fixed:      max(0, monthlyFee - scholarship)
//   - otherwise:  monthlyFee
//
// Inputs are assumed to be validated upstream; percentages above 100 are rejected at the
// request boundary, not here.
func ComputeActualFee(monthlyFee decimal.Decimal, scholarshipType ScholarshipType, scholarship decimal.Decimal) decimal.Decimal {
	switch scholarshipType {
	case ScholarshipPercentage:
		return monthlyFee.Sub(monthlyFee.Mul(scholarship).Div(hundred))
	case ScholarshipFixed:
		return decimal.Max(decimal.Zero, monthlyFee.Sub(scholarship))
	default:
		return monthlyFee
	}
}

// FeeStructure is the recurring monthly charge definition for one student. At most one
// structure per student is active at a time.
type FeeStructure struct {
	FeeStructureID  string          `json:"id"`
	SchoolID        string          `json:"school"`
	StudentID       string          `json:"-"`
	Student         *StudentSummary `json:"student,omitempty"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"`
	Scholarship     decimal.Decimal `json:"scholarship"`
	ScholarshipType ScholarshipType `json:"scholarshipType"`
	EffectiveFrom   time.Time       `json:"effectiveFrom"`
	EffectiveTo     *time.Time      `json:"effectiveTo,omitempty"`
	IsActive        bool            `json:"isActive"`
	Notes           string          `json:"notes,omitempty"`
	AuditFields
}

// ActualFee is the monthly fee after the scholarship is applied.
func (f FeeStructure) ActualFee() decimal.Decimal {
	return ComputeActualFee(f.MonthlyFee, f.ScholarshipType, f.Scholarship)
}

// HasScholarship reports whether a non-zero scholarship is recorded.
func (f FeeStructure) HasScholarship() bool {
	return f.Scholarship.GreaterThan(decimal.Zero)
}

// ScholarshipLabel renders the scholarship as "20%" or "NPR 500".
func (f FeeStructure) ScholarshipLabel() string {
	if f.ScholarshipType == ScholarshipPercentage {
		return f.Scholarship.String() + "%"
	}
	return DefaultCurrency + " " + f.Scholarship.String()
}
