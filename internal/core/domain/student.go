package domain

// Student is a member of a school's roster, optionally linked to a parent user.
type Student struct {
	StudentID   string       `json:"id"`
	SchoolID    string       `json:"school"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	StudentCode string       `json:"studentCode"`
	ClassName   string       `json:"className"`
	Section     string       `json:"section"`
	ParentID    *string      `json:"-"`
	Parent      *UserSummary `json:"parent,omitempty"`
	AuditFields
}

// FullName returns "First Last".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Summary returns the display fields joined onto fee structures and invoices.
func (s Student) Summary() StudentSummary {
	return StudentSummary{
		StudentID:   s.StudentID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		StudentCode: s.StudentCode,
		ClassName:   s.ClassName,
		Section:     s.Section,
	}
}

// StudentSummary holds a student's display fields.
type StudentSummary struct {
	StudentID   string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	StudentCode string `json:"studentCode"`
	ClassName   string `json:"className"`
	Section     string `json:"section"`
}

// FullName returns "First Last".
func (s StudentSummary) FullName() string {
	return s.FirstName + " " + s.LastName
}

// UserSummary holds the display fields of a user.
type UserSummary struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
