package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// PackagingTaskRepository define el puerto de persistencia para las tareas
// del tablero de empaque.
type PackagingTaskRepository interface {
	Create(task *entity.PackagingTask) error
	GetByID(id string) (*entity.PackagingTask, error)
	Update(task *entity.PackagingTask) error
	// List devuelve tareas enriquecidas con código y nombre de SKU;
	// column vacío = todas las columnas.
	List(column string) ([]*entity.PackagingTask, error)
	// GetForUpdate bloquea la fila de la tarea (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.PackagingTask, error)
}
