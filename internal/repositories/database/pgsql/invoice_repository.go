package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
	SELECT i.invoice_id, i.school_id, i.student_id, i.amount, i.currency, i.due_date, i.status,
	       i.term, i.description, i.created_at, i.last_updated_at,
	       st.first_name, st.last_name, st.student_code, st.class_name, st.section
	FROM invoices i
	JOIN students st ON st.student_id = i.student_id
`

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var status string
	summary := domain.StudentSummary{}
	err := row.Scan(
		&inv.InvoiceID,
		&inv.SchoolID,
		&inv.StudentID,
		&inv.Amount,
		&inv.Currency,
		&inv.DueDate,
		&status,
		&inv.Term,
		&inv.Description,
		&inv.CreatedAt,
		&inv.LastUpdatedAt,
		&summary.FirstName,
		&summary.LastName,
		&summary.StudentCode,
		&summary.ClassName,
		&summary.Section,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceStatus(status)
	summary.StudentID = inv.StudentID
	inv.Student = &summary
	return &inv, nil
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, where string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, invoiceSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, invoiceSelect+` WHERE i.invoice_id = $1;`, invoiceID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find invoice "+invoiceID)
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) ExistsInvoiceForTerm(ctx context.Context, schoolID, studentID, term string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE school_id = $1 AND student_id = $2 AND term = $3);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, schoolID, studentID, term).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invoice for term: %w", err)
	}
	return exists, nil
}

func (r *PgxInvoiceRepository) ListInvoicesBySchool(ctx context.Context, schoolID string) ([]domain.Invoice, error) {
	return r.queryInvoices(ctx, ` WHERE i.school_id = $1 ORDER BY i.created_at DESC;`, schoolID)
}

func (r *PgxInvoiceRepository) ListInvoicesByStudents(ctx context.Context, studentIDs []string) ([]domain.Invoice, error) {
	if len(studentIDs) == 0 {
		return []domain.Invoice{}, nil
	}
	return r.queryInvoices(ctx, ` WHERE i.student_id = ANY($1) ORDER BY i.created_at DESC;`, studentIDs)
}

// SaveInvoice relies on the unique (school_id, student_id, term) index to reject a second
// invoice for the same term.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_id, school_id, student_id, amount, currency, due_date, status,
		                      term, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.SchoolID,
		invoice.StudentID,
		invoice.Amount,
		invoice.Currency,
		invoice.DueDate,
		string(invoice.Status),
		invoice.Term,
		invoice.Description,
		invoice.CreatedAt,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to save invoice")
	}
	return nil
}
