package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, restaurant_id, total, status, created_by, country,
	paid_with_id, paid_with_type, paid_with_last4, paid_at, created_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Update bloquea la fila (SELECT ... FOR UPDATE) durante la lectura-validación-escritura.
type OrderRepo struct {
	q  Querier
	tx *TxRunner
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{q: pool, tx: NewTxRunner(pool)}
}

// Create persiste el pedido y sus líneas en una transacción.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return r.tx.Run(ctx, func(q Querier) error {
		var pmID, pmType, pmLast4 *string
		if order.PaidWith != nil {
			pmID, pmType, pmLast4 = &order.PaidWith.ID, &order.PaidWith.Type, &order.PaidWith.Last4
		}
		_, err := q.Exec(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			order.ID, order.RestaurantID, order.Total, string(order.Status), order.CreatedBy, order.Country,
			pmID, pmType, pmLast4, order.PaidAt, order.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: el pedido %s ya existe", domain.ErrInvalidState, order.ID)
			}
			return fmt.Errorf("insert order: %w", err)
		}
		for i, it := range order.Items {
			if _, err := q.Exec(ctx, `
				INSERT INTO order_items (order_id, position, item_id, name, price, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID, i, it.ItemID, it.Name, it.Price, it.Quantity,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

// GetByID obtiene un pedido con sus líneas. Retorna (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return getOrder(ctx, r.q, id, false)
}

// List devuelve todos los pedidos en orden de creación.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	index := make(map[string]*entity.Order)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
		index[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT order_id, item_id, name, price, quantity
		FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it entity.LineItem
		if err := itemRows.Scan(&orderID, &it.ItemID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := index[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return list, itemRows.Err()
}

// Update lee el pedido con la fila bloqueada, aplica fn y guarda estado y datos de pago.
// Las líneas y el total son inmutables tras la creación: fn solo puede cambiar estado y pago.
// Retorna (nil, nil) sin llamar a fn si el pedido no existe.
func (r *OrderRepo) Update(ctx context.Context, id string, fn repository.OrderMutator) (*entity.Order, error) {
	var updated *entity.Order
	err := r.tx.Run(ctx, func(q Querier) error {
		o, err := getOrder(ctx, q, id, true)
		if err != nil || o == nil {
			return err
		}
		if err := fn(o); err != nil {
			return err
		}
		var pmID, pmType, pmLast4 *string
		if o.PaidWith != nil {
			pmID, pmType, pmLast4 = &o.PaidWith.ID, &o.PaidWith.Type, &o.PaidWith.Last4
		}
		if _, err := q.Exec(ctx, `
			UPDATE orders
			SET status = $2, paid_with_id = $3, paid_with_type = $4, paid_with_last4 = $5, paid_at = $6
			WHERE id = $1`,
			o.ID, string(o.Status), pmID, pmType, pmLast4, o.PaidAt,
		); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func getOrder(ctx context.Context, q Querier, id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT item_id, name, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                     entity.Order
		status                string
		pmID, pmType, pmLast4 *string
		paidAt                *time.Time
	)
	if err := row.Scan(
		&o.ID, &o.RestaurantID, &o.Total, &status, &o.CreatedBy, &o.Country,
		&pmID, &pmType, &pmLast4, &paidAt, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if pmID != nil {
		o.PaidWith = &entity.PaymentMethod{ID: *pmID, Type: deref(pmType), Last4: deref(pmLast4)}
	}
	o.PaidAt = paidAt
	o.Items = []entity.LineItem{}
	return &o, nil
}
