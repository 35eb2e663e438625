package dto

import "github.com/SscSPs/school_fee_app/internal/core/domain"

// LoginRequest defines the structure for the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the structure for the login response body
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of a signed-in user.
type UserResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   domain.Role     `json:"role"`
	School *SchoolResponse `json:"school"`
}

type RegisterSchoolRequest struct {
	SchoolName    string `json:"schoolName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	ContactEmail  string `json:"contactEmail" binding:"required,email"`
	ContactPhone  string `json:"contactPhone" binding:"required"`
	AdminName     string `json:"adminName" binding:"required"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminPassword string `json:"adminPassword" binding:"required,min=6,max=72"`
}

type RegisterSchoolResponse struct {
	Message  string `json:"message"`
	SchoolID string `json:"schoolId"`
}

type RegisterParentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	SchoolID string `json:"schoolId" binding:"required"`
}

type RegisterParentResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

// ToUserResponse converts a user and its optional school for the login response.
func ToUserResponse(u domain.User, school *domain.School) UserResponse {
	resp := UserResponse{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if school != nil {
		s := ToSchoolResponse(*school)
		resp.School = &s
	}
	return resp
}
