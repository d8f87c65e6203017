package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every PostgreSQL-backed repository. The cancellation
// code store lives in Redis and is set by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, codeStore portsrepo.CancellationCodeStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CashBoxRepo:        newPgxCashBoxRepository(dbPool),
		MovementRepo:       newPgxMovementRepository(dbPool),
		PolicyPaymentRepo:  newPgxPolicyPaymentRepository(dbPool),
		CorteRepo:          newPgxCorteRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		CodeStore:          codeStore,
	}
}
