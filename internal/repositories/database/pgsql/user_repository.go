package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, role, school_id, is_active, created_at, last_updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.SchoolID,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by ID "+userID)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, notFoundOr(err, "failed to find user by email")
	}
	return user, nil
}

func (r *PgxUserRepository) FindSchoolAdmin(ctx context.Context, schoolID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE school_id = $1 AND role = $2
		ORDER BY created_at
		LIMIT 1;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, schoolID, string(domain.RoleSchoolAdmin)))
	if err != nil {
		return nil, notFoundOr(err, "failed to find admin of school "+schoolID)
	}
	return user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if err := insertUser(ctx, r.Pool, user); err != nil {
		return wrapPgError(err, "failed to save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	query := `UPDATE users SET password_hash = $1, last_updated_at = $2 WHERE user_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, passwordHash, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// insertUser runs on the pool or inside a transaction.
func insertUser(ctx context.Context, db execer, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash, role, school_id, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.SchoolID,
		user.IsActive,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	return err
}
