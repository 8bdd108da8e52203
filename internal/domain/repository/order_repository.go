package repository

import (
	"context"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// OrderMutator recibe el pedido actual dentro de la sección atómica de Update.
// Si devuelve error no se persiste nada.
type OrderMutator func(order *entity.Order) error

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	// Update lee, valida y escribe el pedido de forma atómica (bloqueo de fila o mutex).
	// Devuelve (nil, nil) sin invocar fn si el pedido no existe; el error de fn se devuelve tal cual.
	Update(ctx context.Context, id string, fn OrderMutator) (*entity.Order, error)
}
