package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	StoreDriver string
	StorePing   StorePinger
	Policy      *policy.Engine
	UserUC      *usecase.UserUseCase
	CatalogUC   *usecase.CatalogUseCase
	OrderUC     *usecase.OrderUseCase
	ReceiptUC   *usecase.ReceiptUseCase
	Metrics     *metrics.Metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.StoreDriver, deps.StorePing))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Todas las rutas /api resuelven X-User-Id; cada ruta exige su permiso.
	api := app.Group("/api", IdentityMiddleware(deps.UserUC))
	can := func(action policy.Action) fiber.Handler {
		return RequirePermission(deps.Policy, action, deps.Metrics)
	}

	// Identidad (público: sin cabecera devuelve user null)
	userHandler := NewUserHandler(deps.UserUC, deps.Metrics)
	api.Get("/me", userHandler.Me)

	// Restaurantes
	restaurantHandler := NewRestaurantHandler(deps.CatalogUC, deps.Metrics)
	restaurants := api.Group("/restaurants")
	restaurants.Get("/", can(policy.ActionViewRestaurants), restaurantHandler.List)
	restaurants.Get("/:id/menu", can(policy.ActionViewRestaurants), restaurantHandler.Menu)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, deps.Metrics)
	orders := api.Group("/orders")
	orders.Post("/", can(policy.ActionCreateOrder), orderHandler.Create)
	orders.Get("/", can(policy.ActionViewOrders), orderHandler.List)
	orders.Get("/:id", can(policy.ActionViewOrders), orderHandler.GetByID)
	orders.Post("/:id/checkout", can(policy.ActionPlaceOrder), orderHandler.Checkout)
	orders.Post("/:id/cancel", can(policy.ActionCancelOrder), orderHandler.Cancel)
	orders.Get("/:id/receipt", can(policy.ActionViewOrders), orderHandler.Receipt)

	// Usuarios
	users := api.Group("/users")
	users.Put("/:id/payment", can(policy.ActionUpdatePayment), userHandler.UpdatePayment)
}
