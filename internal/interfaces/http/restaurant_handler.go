package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
)

// RestaurantHandler maneja el catálogo de restaurantes y menús.
type RestaurantHandler struct {
	uc      *usecase.CatalogUseCase
	metrics *metrics.Metrics
}

// NewRestaurantHandler construye el handler.
func NewRestaurantHandler(uc *usecase.CatalogUseCase, m *metrics.Metrics) *RestaurantHandler {
	return &RestaurantHandler{uc: uc, metrics: m}
}

// List godoc
// @Summary      Listar restaurantes visibles
// @Description  ADMIN ve todos; MANAGER y MEMBER solo los de su país.
// @Tags         Restaurantes
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Success      200  {object}  dto.RestaurantListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListVisibleRestaurants(c.UserContext(), GetActor(c))
	if err != nil {
		recordDenial(h.metrics, policy.ActionViewRestaurants, err)
		return respondError(c, err)
	}
	return c.JSON(dto.RestaurantListResponse{Restaurants: list})
}

// Menu godoc
// @Summary      Menú de un restaurante
// @Description  Devuelve 404 si el restaurante no existe y 403 si está fuera del país del usuario.
// @Tags         Restaurantes
// @Produce      json
// @Param        X-User-Id  header  string  true  "ID del usuario"
// @Param        id         path    string  true  "ID del restaurante"
// @Success      200  {object}  dto.MenuResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id}/menu [get]
func (h *RestaurantHandler) Menu(c *fiber.Ctx) error {
	menu, err := h.uc.GetMenu(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		recordDenial(h.metrics, policy.ActionViewRestaurants, err)
		return respondError(c, err)
	}
	return c.JSON(dto.MenuResponse{Menu: menu})
}
