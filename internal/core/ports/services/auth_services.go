package services

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	"github.com/SscSPs/school_fee_app/internal/dto"
)

// LoginResult is a successful sign-in.
type LoginResult struct {
	Token  string
	User   domain.User
	School *domain.School
}

// AuthSvcFacade defines sign-in, self registration and credential management.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error)

	// RegisterSchool creates an unapproved school together with its admin account.
	RegisterSchool(ctx context.Context, req dto.RegisterSchoolRequest) (*domain.School, error)

	// RegisterParent creates a parent account linked to an approved school.
	RegisterParent(ctx context.Context, req dto.RegisterParentRequest) (*domain.User, error)

	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error

	// EnsureSuperAdmin creates the bootstrap super admin unless the email is already taken.
	EnsureSuperAdmin(ctx context.Context, name, email, password string) error
}

// AccountStatusSvc answers whether a token holder may still act.
type AccountStatusSvc interface {
	// IsActive reports whether userID exists and is active. Answers may be cached briefly.
	IsActive(ctx context.Context, userID string) (bool, error)
}
