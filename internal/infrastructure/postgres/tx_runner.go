package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stokespro/cake-crm-sub002/internal/application/ledger"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and packaging.PipelineTxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ packaging.PipelineTxRunner = (*TxRunner)(nil)

// txMaxAttempts reintentos ante 40001/40P01 antes de rendirse.
const txMaxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado cuando el commit falla por serialización o deadlock.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger atados a la tx y hace
// Commit o Rollback. La mutación del contador y la fila del historial se
// confirman juntas o no se confirman.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	transactionRepo repository.MaterialTransactionRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		return r.runLedger(ctx, fn)
	})
}

func (r *TxRunner) runLedger(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	transactionRepo repository.MaterialTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewMaterialRepository(tx)
	transactionRepo := NewMaterialTransactionRepository(tx)

	if err := fn(materialRepo, transactionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPipeline inicia una transacción con los repos del pipeline de empaque
// (inventario + tareas): el movimiento de baldes y el cambio de columna de
// la tarea son una sola unidad de trabajo.
func (r *TxRunner) RunPipeline(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	taskRepo repository.PackagingTaskRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		return r.runPipelineOnce(ctx, fn)
	})
}

func (r *TxRunner) runPipelineOnce(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	taskRepo repository.PackagingTaskRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inventoryRepo := NewInventoryRepository(tx)
	taskRepo := NewPackagingTaskRepository(tx)

	if err := fn(inventoryRepo, taskRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// withRetry reintenta la transacción completa ante fallos transitorios de
// concurrencia (SQLSTATE 40001/40P01); los errores de negocio no se reintentan.
func (r *TxRunner) withRetry(ctx context.Context, attempt func(ctx context.Context) error) error {
	var err error
	for i := 0; i < txMaxAttempts; i++ {
		err = attempt(ctx)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
