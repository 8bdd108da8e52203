package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
)

// OrderHandler maneja el ciclo de vida de pedidos.
type OrderHandler struct {
	orders   *usecase.OrderUseCase
	receipts *usecase.ReceiptUseCase
	metrics  *metrics.Metrics
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *usecase.OrderUseCase, receipts *usecase.ReceiptUseCase, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{orders: orders, receipts: receipts, metrics: m}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Crea un pedido CREATED con el país del usuario; el total es la suma de precio x cantidad (cantidad 0 cuenta como 1).
// @Description  Acepta restaurantId, id/itemId y qty como alias; cualquier otra clave devuelve 400 INVALID_BODY.
// @Tags         Pedidos
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header  string                  true  "ID del usuario"
// @Param        body       body    dto.CreateOrderRequest  true  "Restaurante e ítems"
// @Success      201  {object}  dto.OrderEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.orders.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		recordDenial(h.metrics, policy.ActionCreateOrder, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderEnvelope{Order: *order})
}

// List godoc
// @Summary      Listar pedidos visibles
// @Tags         Pedidos
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.orders.ListVisible(c.UserContext(), GetActor(c))
	if err != nil {
		recordDenial(h.metrics, policy.ActionViewOrders, err)
		return respondError(c, err)
	}
	return c.JSON(dto.OrderListResponse{Orders: list})
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         Pedidos
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Param        id         path    string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orders.GetVisible(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		recordDenial(h.metrics, policy.ActionViewOrders, err)
		return respondError(c, err)
	}
	return c.JSON(dto.OrderEnvelope{Order: *order})
}

// Checkout godoc
// @Summary      Pagar pedido
// @Description  Usa el primer método de pago del usuario. Solo pedidos CREATED.
// @Tags         Pedidos
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Param        id         path    string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderEnvelope
// @Failure      400  {object}  dto.ErrorResponse  "PAYMENT_METHOD_MISSING"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_STATE"
// @Router       /api/orders/{id}/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.orders.Checkout(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		recordDenial(h.metrics, policy.ActionPlaceOrder, err)
		return respondError(c, err)
	}
	return c.JSON(dto.OrderEnvelope{Order: *order, Message: "Pago simulado con éxito"})
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Un pedido PAID no se puede cancelar; cancelar uno ya cancelado no cambia nada.
// @Tags         Pedidos
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Param        id         path    string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_STATE"
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.orders.Cancel(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		recordDenial(h.metrics, policy.ActionCancelOrder, err)
		return respondError(c, err)
	}
	return c.JSON(dto.OrderEnvelope{Order: *order, Message: "Pedido cancelado"})
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Description  Solo para pedidos PAID visibles por el usuario.
// @Tags         Pedidos
// @Produce      application/pdf
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Param        id         path    string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_STATE"
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		recordDenial(h.metrics, policy.ActionViewOrders, err)
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
