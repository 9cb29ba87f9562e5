package ledger

import (
	"context"

	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del contador y la
// fila del historial se confirmen (o reviertan) como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		transactionRepo repository.MaterialTransactionRepository,
	) error) error
}
