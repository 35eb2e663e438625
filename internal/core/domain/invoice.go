package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks an invoice through its lifecycle.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceDueDay is the day of the month generated invoices fall due.
const InvoiceDueDay = 15

// Invoice is a billing record for one student for one term. (SchoolID, StudentID, Term) is unique.
type Invoice struct {
	InvoiceID   string          `json:"id"`
	SchoolID    string          `json:"school"`
	StudentID   string          `json:"-"`
	Student     *StudentSummary `json:"student,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	DueDate     time.Time       `json:"dueDate"`
	Status      InvoiceStatus   `json:"status"`
	Term        string          `json:"term"`
	Description string          `json:"description,omitempty"`
	AuditFields
}

// IsPaid reports whether the invoice has been settled.
func (i Invoice) IsPaid() bool {
	return i.Status == InvoicePaid
}

// TermLabel returns the billing term label for a month, e.g. "April 2025".
func TermLabel(month, year int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month %d out of range 1-12", month)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year), nil
}

// MonthlyDueDate returns the due date of an invoice generated for (year, month).
func MonthlyDueDate(month, year int) time.Time {
	return time.Date(year, time.Month(month), InvoiceDueDay, 0, 0, 0, 0, time.UTC)
}

// MonthlyInvoiceDescription describes a generated invoice, noting the scholarship when present.
func MonthlyInvoiceDescription(term string, fs FeeStructure) string {
	desc := "Monthly fee for " + term
	if fs.HasScholarship() {
		desc += " (Scholarship: " + fs.ScholarshipLabel() + ")"
	}
	return desc
}

// InvoiceGenerationResult reports the outcome of a monthly generation run. Messages holds one
// entry per fee structure that did not produce an invoice.
type InvoiceGenerationResult struct {
	Term     string
	Created  int
	Messages []string
}
