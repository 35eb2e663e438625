package pgsql

import (
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		SchoolRepo:       newPgxSchoolRepository(dbPool),
		PlanRepo:         newPgxPlanRepository(dbPool),
		StudentRepo:      newPgxStudentRepository(dbPool),
		FeeStructureRepo: newPgxFeeStructureRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
	}
}
