package usecase

import (
	"context"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante PDF de un pedido pagado.
// restaurant puede ser nil: la creación de pedidos no exige que el restaurante exista.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, restaurant *entity.Restaurant) ([]byte, error)
}
