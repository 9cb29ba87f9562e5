package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.PackagingTaskRepository = (*PackagingTaskRepo)(nil)

// PackagingTaskRepo implementación de las tareas del tablero de empaque
// sobre PostgreSQL (usable con pool o tx).
type PackagingTaskRepo struct {
	q Querier
}

// NewPackagingTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackagingTaskRepository(q Querier) *PackagingTaskRepo {
	return &PackagingTaskRepo{q: q}
}

// Create persiste una tarea nueva.
func (r *PackagingTaskRepo) Create(task *entity.PackagingTask) error {
	query := `
		INSERT INTO packaging_task_state (id, sku_id, quantity, current_column, task_type, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.SKUID, task.Quantity, task.CurrentColumn, task.TaskType,
		task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create packaging task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *PackagingTaskRepo) GetByID(id string) (*entity.PackagingTask, error) {
	query := `
		SELECT id, sku_id, quantity, current_column, task_type, completed_at, created_at, updated_at
		FROM packaging_task_state WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get packaging task")
}

// GetForUpdate obtiene la tarea y bloquea la fila (SELECT FOR UPDATE).
func (r *PackagingTaskRepo) GetForUpdate(id string) (*entity.PackagingTask, error) {
	query := `
		SELECT id, sku_id, quantity, current_column, task_type, completed_at, created_at, updated_at
		FROM packaging_task_state WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get packaging task for update")
}

// Update persiste columna, tipo, completed_at y updated_at de la tarea.
func (r *PackagingTaskRepo) Update(task *entity.PackagingTask) error {
	query := `
		UPDATE packaging_task_state
		SET current_column = $2, task_type = $3, completed_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.CurrentColumn, task.TaskType, task.CompletedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update packaging task: %w", err)
	}
	return nil
}

// List devuelve tareas enriquecidas con código y nombre de SKU, las más
// recientes primero; column vacío = todas las columnas.
func (r *PackagingTaskRepo) List(column string) ([]*entity.PackagingTask, error) {
	query := `
		SELECT t.id, t.sku_id, t.quantity, t.current_column, t.task_type, t.completed_at, t.created_at, t.updated_at,
		       s.code, s.name
		FROM packaging_task_state t
		JOIN skus s ON s.id = t.sku_id`
	args := []any{}
	if column != "" {
		query += ` WHERE t.current_column = $1`
		args = append(args, column)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list packaging tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackagingTask
	for rows.Next() {
		var t entity.PackagingTask
		if err := rows.Scan(&t.ID, &t.SKUID, &t.Quantity, &t.CurrentColumn, &t.TaskType,
			&t.CompletedAt, &t.CreatedAt, &t.UpdatedAt, &t.SKUCode, &t.SKUName); err != nil {
			return nil, fmt.Errorf("scan packaging task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *PackagingTaskRepo) scanOne(row pgx.Row, op string) (*entity.PackagingTask, error) {
	var t entity.PackagingTask
	err := row.Scan(&t.ID, &t.SKUID, &t.Quantity, &t.CurrentColumn, &t.TaskType,
		&t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
