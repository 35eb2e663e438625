package domain

import "strings"

// Role is the closed set of platform roles a user can hold.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleSchoolAdmin Role = "school_admin"
	RoleParent      Role = "parent"
)

// Capability names one authorizable operation family.
type Capability string

const (
	CapManageSchools       Capability = "manage_schools"
	CapManagePlans         Capability = "manage_plans"
	CapViewOwnSchool       Capability = "view_own_school"
	CapManageStudents      Capability = "manage_students"
	CapManageFeeStructures Capability = "manage_fee_structures"
	CapManageInvoices      Capability = "manage_invoices"
	CapManageChildren      Capability = "manage_children"
	CapViewChildInvoices   Capability = "view_child_invoices"
	CapPayInvoices         Capability = "pay_invoices"
	CapChangePassword      Capability = "change_password"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CapManageSchools:  true,
		CapManagePlans:    true,
		CapChangePassword: true,
	},
	RoleSchoolAdmin: {
		CapViewOwnSchool:       true,
		CapManageStudents:      true,
		CapManageFeeStructures: true,
		CapManageInvoices:      true,
		CapChangePassword:      true,
	},
	RoleParent: {
		CapManageChildren:    true,
		CapViewChildInvoices: true,
		CapPayInvoices:       true,
		CapChangePassword:    true,
	},
}

// ParseRole returns the role named by s.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleCapabilities[r]
	return r, ok
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// RequiresSchool reports whether users holding the role must be linked to a school.
func (r Role) RequiresSchool() bool {
	return r == RoleSchoolAdmin || r == RoleParent
}

// User represents a user of the platform.
type User struct {
	UserID       string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	SchoolID     *string `json:"school,omitempty"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// Summary returns the user's display fields.
func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email}
}

// NormalizeEmail lower-cases and trims an email address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID   string
	Role     Role
	SchoolID string
}

// HasSchool reports whether the identity is linked to a school.
func (i Identity) HasSchool() bool {
	return i.SchoolID != ""
}
