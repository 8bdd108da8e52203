package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// ReceiptUseCase genera el comprobante de pago de un pedido.
// Solo se permite si el pedido está PAID y dentro del alcance del actor.
type ReceiptUseCase struct {
	orders    *OrderUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso reutilizando las reglas de visibilidad de OrderUseCase.
func NewReceiptUseCase(orders *OrderUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename, nil) o:
//   - domain.ErrNotFound     si el pedido no existe.
//   - domain.ErrForbidden    si está fuera del alcance del actor.
//   - domain.ErrInvalidState si el pedido aún no está pagado.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, actor *entity.User, orderID string) ([]byte, string, error) {
	o, err := uc.orders.loadVisible(ctx, actor, orderID)
	if err != nil {
		return nil, "", err
	}
	if o.Status != entity.OrderStatusPaid {
		return nil, "", fmt.Errorf("%w: el pedido está en %s, solo hay comprobante para pedidos pagados",
			domain.ErrInvalidState, o.Status)
	}
	rest, err := uc.orders.restaurants.GetByID(ctx, o.RestaurantID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener restaurante: %w", err)
	}
	pdf, err := uc.generator.GenerateReceipt(ctx, o, rest)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar PDF: %w", err)
	}
	return pdf, "recibo-" + o.ID + ".pdf", nil
}
