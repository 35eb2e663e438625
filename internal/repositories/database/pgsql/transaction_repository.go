package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, invoice_id, amount, gateway, status, gateway_ref_id, raw_response, created_at, last_updated_at`

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var gateway, status string
	var raw []byte
	err := row.Scan(
		&t.TransactionID,
		&t.InvoiceID,
		&t.Amount,
		&gateway,
		&status,
		&t.GatewayRefID,
		&raw,
		&t.CreatedAt,
		&t.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Gateway = domain.Gateway(gateway)
	t.Status = domain.TransactionStatus(status)
	t.RawResponse = raw
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction "+transactionID)
	}
	return t, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, invoice_id, amount, gateway, status, gateway_ref_id,
		                          raw_response, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	var raw []byte
	if len(txn.RawResponse) > 0 {
		raw = txn.RawResponse
	}
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.InvoiceID,
		txn.Amount,
		string(txn.Gateway),
		string(txn.Status),
		txn.GatewayRefID,
		raw,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return wrapPgError(err, "failed to save transaction")
	}
	return nil
}

// ApplyPaymentOutcome overwrites the transaction with the gateway outcome and, on success,
// marks its invoice paid. Both updates commit or roll back together.
func (r *PgxTransactionRepository) ApplyPaymentOutcome(ctx context.Context, outcome domain.PaymentOutcome) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	var raw []byte
	if len(outcome.RawPayload) > 0 {
		raw = outcome.RawPayload
	}

	query := `
		UPDATE transactions
		SET status = $1, gateway_ref_id = NULLIF($2, ''), raw_response = $3, last_updated_at = $4
		WHERE transaction_id = $5
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(tx.QueryRow(ctx, query, string(outcome.Status), outcome.GatewayRefID, raw, now, outcome.TransactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to update transaction "+outcome.TransactionID)
	}

	if outcome.Status == domain.TransactionSuccess {
		_, err = tx.Exec(ctx,
			`UPDATE invoices SET status = $1, last_updated_at = $2 WHERE invoice_id = $3;`,
			string(domain.InvoicePaid), now, txn.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark invoice %s paid: %w", txn.InvoiceID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}
