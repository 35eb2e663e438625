package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/samber/lo"
)

// StudentRequest is the body of student create and update.
type StudentRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	StudentCode string `json:"studentCode" binding:"required"`
	ClassName   string `json:"className" binding:"required"`
	Section     string `json:"section" binding:"required"`
	// Parent is a user id; empty unlinks.
	Parent *string `json:"parent"`
}

// ParentID returns the requested parent, treating blank as none.
func (r StudentRequest) ParentID() *string {
	if r.Parent == nil || strings.TrimSpace(*r.Parent) == "" {
		return nil
	}
	id := strings.TrimSpace(*r.Parent)
	return &id
}

type LinkChildRequest struct {
	StudentCode string `json:"studentCode" binding:"required"`
}

type LinkChildResponse struct {
	Message string          `json:"message"`
	Student StudentResponse `json:"student"`
}

type StudentResponse struct {
	ID          string               `json:"id"`
	School      string               `json:"school"`
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	StudentCode string               `json:"studentCode"`
	ClassName   string               `json:"className"`
	Section     string               `json:"section"`
	Parent      *UserSummaryResponse `json:"parent"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// StudentSummaryResponse is the student joined onto fee structures and invoices.
type StudentSummaryResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	StudentCode string `json:"studentCode"`
	ClassName   string `json:"className"`
	Section     string `json:"section"`
}

func ToStudentResponse(s domain.Student) StudentResponse {
	resp := StudentResponse{
		ID:          s.StudentID,
		School:      s.SchoolID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		StudentCode: s.StudentCode,
		ClassName:   s.ClassName,
		Section:     s.Section,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.LastUpdatedAt,
	}
	if s.Parent != nil {
		p := ToUserSummaryResponse(*s.Parent)
		resp.Parent = &p
	}
	return resp
}

func ToStudentListResponse(students []domain.Student) []StudentResponse {
	return lo.Map(students, func(s domain.Student, _ int) StudentResponse { return ToStudentResponse(s) })
}

func toStudentSummaryResponse(s *domain.StudentSummary) *StudentSummaryResponse {
	if s == nil {
		return nil
	}
	return &StudentSummaryResponse{
		ID:          s.StudentID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		StudentCode: s.StudentCode,
		ClassName:   s.ClassName,
		Section:     s.Section,
	}
}
