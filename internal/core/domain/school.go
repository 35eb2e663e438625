package domain

import "github.com/shopspring/decimal"

// School is a tenant of the platform. It must be approved by a super admin before its
// admins can sign in or parents can register against it.
type School struct {
	SchoolID           string  `json:"id"`
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	ContactEmail       string  `json:"contactEmail"`
	ContactPhone       string  `json:"contactPhone"`
	IsApproved         bool    `json:"isApproved"`
	SubscriptionPlanID *string `json:"subscriptionPlanId,omitempty"`
	SubscriptionPlan   *Plan   `json:"subscriptionPlan,omitempty"`
	AuditFields
}

// Plan is a subscription plan offered to schools.
type Plan struct {
	PlanID        string          `json:"id"`
	Name          string          `json:"name"`
	PricePerMonth decimal.Decimal `json:"pricePerMonth" swaggertype:"number"`
	MaxStudents   int             `json:"maxStudents"`
	Features      []string        `json:"features"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// SchoolStatistics summarises the invoices of a school.
type SchoolStatistics struct {
	TotalStudents   int             `json:"totalStudents"`
	TotalInvoices   int             `json:"totalInvoices"`
	TotalAmount     decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	PaidAmount      decimal.Decimal `json:"paidAmount" swaggertype:"number"`
	PendingAmount   decimal.Decimal `json:"pendingAmount" swaggertype:"number"`
	OverdueAmount   decimal.Decimal `json:"overdueAmount" swaggertype:"number"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" swaggertype:"number"`
}

// SchoolDetails is the super admin view of one school.
type SchoolDetails struct {
	School     School
	Students   []Student
	Invoices   []Invoice
	Statistics SchoolStatistics
}

// ParentNotification groups the pending invoices of one parent.
type ParentNotification struct {
	Parent      UserSummary
	Invoices    []Invoice
	TotalAmount decimal.Decimal
}

// ParentNotificationBatch is prepared for delivery to every parent with pending invoices.
type ParentNotificationBatch struct {
	Notifications      []ParentNotification
	TotalPendingAmount decimal.Decimal
}

// SchoolNotification is prepared for delivery to a school's admin.
type SchoolNotification struct {
	SchoolAdmin          UserSummary
	PendingInvoicesCount int
	TotalPendingAmount   decimal.Decimal
}
