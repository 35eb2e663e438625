package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type PlanResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PricePerMonth decimal.Decimal `json:"pricePerMonth" swaggertype:"number"`
	MaxStudents   int             `json:"maxStudents"`
	Features      []string        `json:"features"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CreatePlanRequest struct {
	Name          string           `json:"name" binding:"required"`
	PricePerMonth *decimal.Decimal `json:"pricePerMonth" binding:"required,gte=0" swaggertype:"number"`
	MaxStudents   *int             `json:"maxStudents" binding:"required,gte=0"`
	Features      []string         `json:"features"`
	IsActive      *bool            `json:"isActive"`
}

type SchoolResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Address          string        `json:"address"`
	ContactEmail     string        `json:"contactEmail"`
	ContactPhone     string        `json:"contactPhone"`
	IsApproved       bool          `json:"isApproved"`
	SubscriptionPlan *PlanResponse `json:"subscriptionPlan"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type SchoolApprovalResponse struct {
	Message string         `json:"message"`
	School  SchoolResponse `json:"school"`
}

type SchoolDetailsResponse struct {
	School     SchoolResponse          `json:"school"`
	Students   []StudentResponse       `json:"students"`
	Invoices   []InvoiceResponse       `json:"invoices"`
	Statistics domain.SchoolStatistics `json:"statistics"`
}

type UserSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ParentNotificationResponse struct {
	Parent      UserSummaryResponse `json:"parent"`
	Invoices    []InvoiceResponse   `json:"invoices"`
	TotalAmount decimal.Decimal     `json:"totalAmount" swaggertype:"number"`
}

type NotifyParentsResponse struct {
	Message            string                       `json:"message"`
	Notifications      []ParentNotificationResponse `json:"notifications"`
	TotalPendingAmount decimal.Decimal              `json:"totalPendingAmount" swaggertype:"number"`
}

type NotifySchoolResponse struct {
	Message              string              `json:"message"`
	SchoolAdmin          UserSummaryResponse `json:"schoolAdmin"`
	PendingInvoicesCount int                 `json:"pendingInvoicesCount"`
	TotalPendingAmount   decimal.Decimal     `json:"totalPendingAmount" swaggertype:"number"`
}

func ToPlanResponse(p domain.Plan) PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:            p.PlanID,
		Name:          p.Name,
		PricePerMonth: p.PricePerMonth,
		MaxStudents:   p.MaxStudents,
		Features:      features,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.LastUpdatedAt,
	}
}

func ToPlanListResponse(plans []domain.Plan) []PlanResponse {
	return lo.Map(plans, func(p domain.Plan, _ int) PlanResponse { return ToPlanResponse(p) })
}

func ToSchoolResponse(s domain.School) SchoolResponse {
	resp := SchoolResponse{
		ID:           s.SchoolID,
		Name:         s.Name,
		Address:      s.Address,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		IsApproved:   s.IsApproved,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.LastUpdatedAt,
	}
	if s.SubscriptionPlan != nil {
		plan := ToPlanResponse(*s.SubscriptionPlan)
		resp.SubscriptionPlan = &plan
	}
	return resp
}

func ToSchoolListResponse(schools []domain.School) []SchoolResponse {
	return lo.Map(schools, func(s domain.School, _ int) SchoolResponse { return ToSchoolResponse(s) })
}

func ToSchoolDetailsResponse(d domain.SchoolDetails) SchoolDetailsResponse {
	return SchoolDetailsResponse{
		School:     ToSchoolResponse(d.School),
		Students:   ToStudentListResponse(d.Students),
		Invoices:   ToInvoiceListResponse(d.Invoices),
		Statistics: d.Statistics,
	}
}

func ToUserSummaryResponse(u domain.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{ID: u.UserID, Name: u.Name, Email: u.Email}
}

func ToNotifyParentsResponse(batch domain.ParentNotificationBatch) NotifyParentsResponse {
	return NotifyParentsResponse{
		Message: fmt.Sprintf("Notifications prepared for %d parents", len(batch.Notifications)),
		Notifications: lo.Map(batch.Notifications, func(n domain.ParentNotification, _ int) ParentNotificationResponse {
			return ParentNotificationResponse{
				Parent:      ToUserSummaryResponse(n.Parent),
				Invoices:    ToInvoiceListResponse(n.Invoices),
				TotalAmount: n.TotalAmount,
			}
		}),
		TotalPendingAmount: batch.TotalPendingAmount,
	}
}

func ToNotifySchoolResponse(n domain.SchoolNotification) NotifySchoolResponse {
	return NotifySchoolResponse{
		Message:              "School admin notification prepared",
		SchoolAdmin:          ToUserSummaryResponse(n.SchoolAdmin),
		PendingInvoicesCount: n.PendingInvoicesCount,
		TotalPendingAmount:   n.TotalPendingAmount,
	}
}
