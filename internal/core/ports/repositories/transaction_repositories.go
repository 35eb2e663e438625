package repositories

import (
	"context"

	"github.com/SscSPs/school_fee_app/internal/core/domain"
)

// TransactionReader defines read operations for payment transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for payment transactions.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// ApplyPaymentOutcome records a gateway outcome on its transaction and, when the outcome
	// is a success, marks the referenced invoice paid. Both writes commit together.
	ApplyPaymentOutcome(ctx context.Context, outcome domain.PaymentOutcome) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
