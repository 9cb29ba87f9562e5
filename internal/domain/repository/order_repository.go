package repository

import "github.com/stokespro/cake-crm-sub002/internal/domain/entity"

// OrderRepository puerto de solo lectura sobre pedidos del CRM.
// La agregación de demanda y las proyecciones leen de aquí; nada escribe.
type OrderRepository interface {
	// ListOpenWithItems devuelve pedidos en estado pending o confirmed con
	// sus líneas (incluye código de SKU por línea).
	ListOpenWithItems() ([]*entity.Order, error)
	// ListConfirmedWithDispensary devuelve pedidos confirmados con el nombre
	// del dispensario y sus líneas, ordenados por fecha de entrega.
	ListConfirmedWithDispensary() ([]*entity.Order, error)
}
