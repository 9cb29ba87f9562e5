package postgres

import (
	"context"
	"fmt"

	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
	"github.com/stokespro/cake-crm-sub002/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de pedidos del CRM sobre PostgreSQL. Este núcleo nunca
// escribe en orders/order_items; solo proyecta.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListOpenWithItems devuelve pedidos en estado pending o confirmed con sus
// líneas, cada línea con el código de SKU (insumo de la agregación de demanda).
func (r *OrderRepo) ListOpenWithItems() ([]*entity.Order, error) {
	return r.listWithItems(
		`SELECT o.id, o.dispensary_id, o.status, o.delivery_date, COALESCE(o.notes, ''), o.created_at, ''
		 FROM orders o
		 WHERE o.status IN ($1, $2)
		 ORDER BY o.delivery_date`,
		[]any{entity.OrderStatusPending, entity.OrderStatusConfirmed},
	)
}

// ListConfirmedWithDispensary devuelve pedidos confirmados con el nombre del
// dispensario y sus líneas, ordenados por fecha de entrega.
func (r *OrderRepo) ListConfirmedWithDispensary() ([]*entity.Order, error) {
	return r.listWithItems(
		`SELECT o.id, o.dispensary_id, o.status, o.delivery_date, COALESCE(o.notes, ''), o.created_at, d.name
		 FROM orders o
		 JOIN dispensaries d ON d.id = o.dispensary_id
		 WHERE o.status = $1
		 ORDER BY o.delivery_date`,
		[]any{entity.OrderStatusConfirmed},
	)
}

func (r *OrderRepo) listWithItems(query string, args []any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	byID := make(map[string]*entity.Order)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.DispensaryID, &o.Status, &o.DeliveryDate,
			&o.Notes, &o.CreatedAt, &o.DispensaryName); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.q.Query(context.Background(), `
		SELECT i.id, i.order_id, i.sku_id, s.code, i.quantity, i.unit_price
		FROM order_items i
		JOIN skus s ON s.id = i.sku_id
		WHERE i.order_id = ANY($1)
		ORDER BY s.code`, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.SKUID, &it.SKUCode,
			&it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return list, itemRows.Err()
}
