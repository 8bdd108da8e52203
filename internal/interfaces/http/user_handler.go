package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
)

// UserHandler maneja la identidad actual y los métodos de pago.
type UserHandler struct {
	uc      *usecase.UserUseCase
	metrics *metrics.Metrics
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, m *metrics.Metrics) *UserHandler {
	return &UserHandler{uc: uc, metrics: m}
}

// Me godoc
// @Summary      Usuario actual
// @Description  Devuelve {"user": null} si no hay cabecera X-User-Id o el usuario no existe.
// @Tags         Usuarios
// @Produce      json
// @Param        X-User-Id  header  string  false  "ID del usuario"
// @Success      200  {object}  dto.MeResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.MeResponse{User: h.uc.Me(GetActor(c))})
}

// UpdatePayment godoc
// @Summary      Reemplazar métodos de pago
// @Description  Reemplaza la lista completa de métodos de pago del usuario indicado (solo ADMIN).
// @Description  Acepta paymentMethods como alias; cualquier otra clave devuelve 400 INVALID_BODY.
// @Tags         Usuarios
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header  string                           true  "ID del usuario"
// @Param        id         path    string                           true  "ID del usuario destino"
// @Param        body       body    dto.UpdatePaymentMethodsRequest  true  "Nueva lista de métodos"
// @Success      200  {object}  dto.UserEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/payment [put]
func (h *UserHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentMethodsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	user, err := h.uc.UpdatePaymentMethods(c.UserContext(), GetActor(c), c.Params("id"), in.PaymentMethods)
	if err != nil {
		recordDenial(h.metrics, policy.ActionUpdatePayment, err)
		return respondError(c, err)
	}
	return c.JSON(dto.UserEnvelope{User: *user})
}
