package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StorePinger comprueba que el almacenamiento responde.
type StorePinger func(ctx context.Context) error

// HealthResponse salida de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
	Error   string `json:"error,omitempty"`
}

const healthPingTimeout = 2 * time.Second

// Health godoc
// @Summary      Estado del servicio
// @Description  Informa el driver de almacenamiento; responde 503 si el almacenamiento no contesta.
// @Tags         Sistema
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func Health(service, store string, ping StorePinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := HealthResponse{Status: "ok", Service: service, Store: store}
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				out.Status = "degraded"
				out.Error = err.Error()
				return c.Status(fiber.StatusServiceUnavailable).JSON(out)
			}
		}
		return c.JSON(out)
	}
}
