package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStudentRepository struct {
	BaseRepository
}

func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

const studentSelect = `
	SELECT st.student_id, st.school_id, st.first_name, st.last_name, st.student_code,
	       st.class_name, st.section, st.parent_id, st.created_at, st.last_updated_at,
	       u.name, u.email
	FROM students st
	LEFT JOIN users u ON u.user_id = st.parent_id
`

func scanStudent(row rowScanner) (*domain.Student, error) {
	var s domain.Student
	var parentName, parentEmail *string
	err := row.Scan(
		&s.StudentID,
		&s.SchoolID,
		&s.FirstName,
		&s.LastName,
		&s.StudentCode,
		&s.ClassName,
		&s.Section,
		&s.ParentID,
		&s.CreatedAt,
		&s.LastUpdatedAt,
		&parentName,
		&parentEmail,
	)
	if err != nil {
		return nil, err
	}
	if s.ParentID != nil && parentName != nil {
		s.Parent = &domain.UserSummary{UserID: *s.ParentID, Name: *parentName}
		if parentEmail != nil {
			s.Parent.Email = *parentEmail
		}
	}
	return &s, nil
}

func (r *PgxStudentRepository) queryStudents(ctx context.Context, where string, args ...any) ([]domain.Student, error) {
	rows, err := r.Pool.Query(ctx, studentSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error) {
	s, err := scanStudent(r.Pool.QueryRow(ctx, studentSelect+` WHERE st.school_id = $1 AND st.student_id = $2;`, schoolID, studentID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find student "+studentID)
	}
	return s, nil
}

func (r *PgxStudentRepository) FindStudentByCode(ctx context.Context, schoolID, studentCode string) (*domain.Student, error) {
	s, err := scanStudent(r.Pool.QueryRow(ctx, studentSelect+` WHERE st.school_id = $1 AND st.student_code = $2;`, schoolID, studentCode))
	if err != nil {
		return nil, notFoundOr(err, "failed to find student by code")
	}
	return s, nil
}

func (r *PgxStudentRepository) ListStudentsBySchool(ctx context.Context, schoolID string) ([]domain.Student, error) {
	return r.queryStudents(ctx, ` WHERE st.school_id = $1 ORDER BY st.created_at DESC;`, schoolID)
}

func (r *PgxStudentRepository) ListStudentsByParent(ctx context.Context, schoolID, parentID string) ([]domain.Student, error) {
	return r.queryStudents(ctx, ` WHERE st.school_id = $1 AND st.parent_id = $2 ORDER BY st.first_name, st.last_name;`, schoolID, parentID)
}

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	query := `
		INSERT INTO students (student_id, school_id, first_name, last_name, student_code, class_name,
		                      section, parent_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		student.StudentID,
		student.SchoolID,
		student.FirstName,
		student.LastName,
		student.StudentCode,
		student.ClassName,
		student.Section,
		student.ParentID,
		student.CreatedAt,
		student.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to save student")
	}
	return nil
}

func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, student_code = $3, class_name = $4, section = $5,
		    parent_id = $6, last_updated_at = $7
		WHERE student_id = $8 AND school_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		student.FirstName,
		student.LastName,
		student.StudentCode,
		student.ClassName,
		student.Section,
		student.ParentID,
		student.LastUpdatedAt,
		student.StudentID,
		student.SchoolID,
	)
	if err != nil {
		return wrapPgError(err, "failed to update student")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteStudent fails with apperrors.ErrInvalidState while fee structures or invoices
// reference the student.
func (r *PgxStudentRepository) DeleteStudent(ctx context.Context, schoolID, studentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1 AND school_id = $2;`, studentID, schoolID)
	if err != nil {
		return wrapPgError(err, "failed to delete student")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LinkParent only claims an unlinked student, so two parents racing on one code cannot both win.
func (r *PgxStudentRepository) LinkParent(ctx context.Context, studentID, parentID string) error {
	query := `
		UPDATE students SET parent_id = $1, last_updated_at = NOW()
		WHERE student_id = $2 AND (parent_id IS NULL OR parent_id = $1);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, parentID, studentID)
	if err != nil {
		return wrapPgError(err, "failed to link parent")
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE student_id = $1);`, studentID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check student %s: %w", studentID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("student %s has another parent: %w", studentID, apperrors.ErrDuplicate)
}
