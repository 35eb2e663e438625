package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/platform/config"
	"github.com/SscSPs/school_fee_app/internal/utils"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "Invalid email or password"

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	schoolRepo portsrepo.SchoolRepositoryFacade
	jwtSecret  string
	jwtExpiry  time.Duration
	jwtIssuer  string
}

// NewAuthService creates a new auth service signing tokens with the configured JWT settings.
func NewAuthService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	schoolRepo portsrepo.SchoolRepositoryFacade,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:   userRepo,
		schoolRepo: schoolRepo,
		jwtSecret:  cfg.JWTSecret,
		jwtExpiry:  cfg.JWTExpiryDuration,
		jwtIssuer:  cfg.JWTIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a session token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.LoginResult, error) {
	email := domain.NormalizeEmail(req.Email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login rejected: wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	var school *domain.School
	if user.SchoolID != nil {
		school, err = s.schoolRepo.FindSchoolByID(ctx, *user.SchoolID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load school for login", slog.String("school_id", *user.SchoolID))
			return nil, err
		}
	}

	if user.Role == domain.RoleSchoolAdmin && (school == nil || !school.IsApproved) {
		return nil, apperrors.NewForbiddenError("School is not approved yet. Please contact platform admin.")
	}

	identity := domain.Identity{UserID: user.UserID, Role: user.Role}
	if school != nil {
		identity.SchoolID = school.SchoolID
	}

	token, err := utils.GenerateJWT(identity, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &portssvc.LoginResult{Token: token, User: *user, School: school}, nil
}

// RegisterSchool creates an unapproved school together with its admin account.
func (s *authService) RegisterSchool(ctx context.Context, req dto.RegisterSchoolRequest) (*domain.School, error) {
	adminEmail := domain.NormalizeEmail(req.AdminEmail)
	if err := s.ensureEmailAvailable(ctx, adminEmail, "Admin email already registered"); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.AdminPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash admin password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	school := domain.School{
		SchoolID:     uuid.NewString(),
		Name:         req.SchoolName,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		IsApproved:   false,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	admin := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.AdminName,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         domain.RoleSchoolAdmin,
		SchoolID:     &school.SchoolID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.schoolRepo.SaveSchoolWithAdmin(ctx, school, admin); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Admin email already registered")
		}
		s.LogError(ctx, err, "Failed to register school", slog.String("school_name", req.SchoolName))
		return nil, err
	}

	s.LogInfo(ctx, "School registered, awaiting approval",
		slog.String("school_id", school.SchoolID),
		slog.String("admin_id", admin.UserID))
	return &school, nil
}

// RegisterParent creates a parent account linked to an approved school.
func (s *authService) RegisterParent(ctx context.Context, req dto.RegisterParentRequest) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	if err := s.ensureEmailAvailable(ctx, email, "Email already registered"); err != nil {
		return nil, err
	}

	school, err := s.schoolRepo.FindSchoolByID(ctx, req.SchoolID)
	if err != nil {
		return nil, s.notFoundAs(ctx, err, "School not found", "Failed to load school for parent registration",
			slog.String("school_id", req.SchoolID))
	}
	if !school.IsApproved {
		return nil, apperrors.NewForbiddenError("School is not approved yet")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash parent password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	parent := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleParent,
		SchoolID:     &school.SchoolID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, parent); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		s.LogError(ctx, err, "Failed to save parent", slog.String("school_id", school.SchoolID))
		return nil, err
	}

	s.LogInfo(ctx, "Parent registered", slog.String("user_id", parent.UserID), slog.String("school_id", school.SchoolID))
	return &parent, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewUnauthorizedError("User not found or inactive")
		}
		s.LogError(ctx, err, "Failed to load user for password change", slog.String("user_id", userID))
		return err
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password", slog.String("user_id", userID))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

// EnsureSuperAdmin creates the bootstrap super admin unless the email is already taken.
func (s *authService) EnsureSuperAdmin(ctx context.Context, name, email, password string) error {
	email = domain.NormalizeEmail(email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleSuperAdmin {
			s.LogWarn(ctx, "Bootstrap super admin email belongs to another role", slog.String("user_id", existing.UserID))
		}
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}

	s.LogInfo(ctx, "Bootstrap super admin created", slog.String("user_id", admin.UserID))
	return nil
}

func (s *authService) ensureEmailAvailable(ctx context.Context, email, conflictMessage string) error {
	_, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return apperrors.NewConflictError(conflictMessage)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		s.LogError(ctx, err, "Failed to check email availability")
		return err
	}
}
