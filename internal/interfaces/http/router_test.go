package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Ordering-api/internal/interfaces/http"
	"github.com/jhoicas/Ordering-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	t       *testing.T
	app     *fiber.App
	metrics *metrics.Metrics
}

// newTestAPI arma la API completa sobre el almacén en memoria sembrado.
func newTestAPI(t *testing.T, opts usecase.OrderOptions) *testAPI {
	t.Helper()
	store := memory.NewStore(memory.SeedData())
	engine := policy.Default()
	var seq int64
	opts.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	opts.NewID = func() string { return fmt.Sprintf("ord_%d", atomic.AddInt64(&seq, 1)) }

	m := metrics.New()
	opts.OnTransition = func(to entity.OrderStatus) { m.IncOrderTransition(string(to)) }
	orderUC := usecase.NewOrderUseCase(engine, store.Orders(), store.Restaurants(), opts)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Use(apphttp.MetricsMiddleware(m))
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "ordering-api-test",
		StoreDriver: "memory",
		Policy:      engine,
		UserUC:      usecase.NewUserUseCase(engine, store.Users()),
		CatalogUC:   usecase.NewCatalogUseCase(engine, store.Restaurants()),
		OrderUC:     orderUC,
		ReceiptUC:   usecase.NewReceiptUseCase(orderUC, pdf.NewMarotoReceiptGenerator()),
		Metrics:     m,
	})
	return &testAPI{t: t, app: app, metrics: m}
}

// do lanza la petición y devuelve status y cuerpo crudo.
func (a *testAPI) do(method, path, userID string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(apphttp.HeaderUserID, userID)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

// decode deserializa el cuerpo en v.
func (a *testAPI) decode(raw []byte, v any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(raw, v), "body: %s", raw)
}

// errorCode devuelve el code de un dto.ErrorResponse.
func (a *testAPI) errorCode(raw []byte) string {
	a.t.Helper()
	var e dto.ErrorResponse
	a.decode(raw, &e)
	return e.Code
}

// createR1Order crea como u2 el pedido de referencia (total 440).
func (a *testAPI) createR1Order(userID string) dto.OrderResponse {
	a.t.Helper()
	status, raw := a.do(http.MethodPost, "/api/orders", userID, dto.CreateOrderRequest{
		RestaurantID: "r1",
		Items: []dto.LineItemRequest{
			{ItemID: "m1", Name: "Butter Chicken", Price: decimal.NewFromInt(320), Quantity: 1},
			{ItemID: "m3", Name: "Garlic Naan (2 pc)", Price: decimal.NewFromInt(60), Quantity: 2},
		},
	})
	require.Equal(a.t, fiber.StatusCreated, status, "body: %s", raw)
	var env dto.OrderEnvelope
	a.decode(raw, &env)
	return env.Order
}

// ──────────────────────────────────────────────────────────────────────────────
// Sistema
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	status, raw := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"ordering-api-test","store":"memory"}`, string(raw))
}

func TestHealth_AlmacenamientoCaido(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("ordering-api-test", "postgres", func(context.Context) error {
		return errors.New("conexión rechazada")
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var out apphttp.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "postgres", out.Store)
	assert.Equal(t, "conexión rechazada", out.Error)
}

func TestRouter_RutaInexistente(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	status, raw := api.do(http.MethodGet, "/api/nada", "u1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", api.errorCode(raw))
}

func TestRouter_Metrics(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u2")
	status, _ := api.do(http.MethodPost, "/api/orders/"+order.ID+"/checkout", "u2", nil)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `ordering_orders_transitions_total{to="PAID"} 1`)
	assert.Contains(t, string(raw), `ordering_http_requests_total`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Identidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Me(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"user":null}`, string(raw))

	status, raw = api.do(http.MethodGet, "/api/me", "u1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var me dto.MeResponse
	api.decode(raw, &me)
	require.NotNil(t, me.User)
	assert.Equal(t, "ADMIN", me.User.Role)
	assert.Equal(t, "pm1", me.User.PaymentMethods[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restaurantes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RestaurantesPorAlcance(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	ids := func(userID string) []string {
		status, raw := api.do(http.MethodGet, "/api/restaurants", userID, nil)
		require.Equal(t, fiber.StatusOK, status)
		var out dto.RestaurantListResponse
		api.decode(raw, &out)
		result := make([]string, 0, len(out.Restaurants))
		for _, r := range out.Restaurants {
			result = append(result, r.ID)
		}
		return result
	}

	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids("u1"))
	assert.Equal(t, []string{"r1", "r2"}, ids("u2"))
	assert.Equal(t, []string{"r3", "r4"}, ids("u6"))

	status, raw := api.do(http.MethodGet, "/api/restaurants", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", api.errorCode(raw))
}

func TestRouter_Menu(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodGet, "/api/restaurants/r1/menu", "u4", nil)
	require.Equal(t, fiber.StatusOK, status)
	var menu dto.MenuResponse
	api.decode(raw, &menu)
	assert.Len(t, menu.Menu, 4)

	status, raw = api.do(http.MethodGet, "/api/restaurants/r3/menu", "u2", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", api.errorCode(raw))

	status, raw = api.do(http.MethodGet, "/api/restaurants/r99/menu", "u2", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", api.errorCode(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CrearPedido(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	order := api.createR1Order("u2")

	assert.Equal(t, "ord_1", order.ID)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(440)), "total=%s", order.Total)
	assert.Equal(t, "CREATED", order.Status)
	assert.Equal(t, "u2", order.CreatedBy)
	assert.Equal(t, "India", order.Country)
	assert.Nil(t, order.PaidWith)
}

func TestRouter_CrearPedido_Errores(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPost, "/api/orders", "u2", "{no es json")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", api.errorCode(raw))

	status, raw = api.do(http.MethodPost, "/api/orders", "u2", map[string]any{"restaurant_id": "r1"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", api.errorCode(raw))

	status, raw = api.do(http.MethodPost, "/api/orders", "", map[string]any{"restaurant_id": "r1", "items": []any{}})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", api.errorCode(raw))
}

func TestRouter_CrearPedido_AlcanceEstricto(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{EnforceCreateScope: true})

	status, raw := api.do(http.MethodPost, "/api/orders", "u2", map[string]any{"restaurant_id": "r3", "items": []any{}})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", api.errorCode(raw))
}

func TestRouter_Checkout(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u2")
	path := "/api/orders/" + order.ID + "/checkout"

	// Manager de otro país
	status, raw := api.do(http.MethodPost, path, "u3", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", api.errorCode(raw))

	// MEMBER no tiene place_order
	status, _ = api.do(http.MethodPost, path, "u4", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, raw = api.do(http.MethodPost, path, "u2", nil)
	require.Equal(t, fiber.StatusOK, status, "body: %s", raw)
	var env dto.OrderEnvelope
	api.decode(raw, &env)
	assert.Equal(t, "PAID", env.Order.Status)
	require.NotNil(t, env.Order.PaidWith)
	assert.Equal(t, "pm2", env.Order.PaidWith.ID)
	assert.NotNil(t, env.Order.PaidAt)
	assert.NotEmpty(t, env.Message)

	// Segundo pago
	status, raw = api.do(http.MethodPost, path, "u2", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", api.errorCode(raw))

	// Pedido pagado no se cancela
	status, raw = api.do(http.MethodPost, "/api/orders/"+order.ID+"/cancel", "u1", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", api.errorCode(raw))

	status, raw = api.do(http.MethodPost, "/api/orders/ord_999/checkout", "u1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", api.errorCode(raw))
}

func TestRouter_Checkout_SinMetodoDePago(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u2")

	status, _ := api.do(http.MethodPut, "/api/users/u2/payment", "u1", map[string]any{"payment_methods": []any{}})
	require.Equal(t, fiber.StatusOK, status)

	status, raw := api.do(http.MethodPost, "/api/orders/"+order.ID+"/checkout", "u2", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "PAYMENT_METHOD_MISSING", api.errorCode(raw))

	status, raw = api.do(http.MethodGet, "/api/orders/"+order.ID, "u2", nil)
	require.Equal(t, fiber.StatusOK, status)
	var env dto.OrderEnvelope
	api.decode(raw, &env)
	assert.Equal(t, "CREATED", env.Order.Status)
}

func TestRouter_Cancel(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u4") // MEMBER puede crear
	path := "/api/orders/" + order.ID + "/cancel"

	status, _ := api.do(http.MethodPost, path, "u4", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, raw := api.do(http.MethodPost, path, "u2", nil)
	require.Equal(t, fiber.StatusOK, status, "body: %s", raw)
	var env dto.OrderEnvelope
	api.decode(raw, &env)
	assert.Equal(t, "CANCELLED", env.Order.Status)

	// Re-cancelar es idempotente
	status, raw = api.do(http.MethodPost, path, "u2", nil)
	require.Equal(t, fiber.StatusOK, status)
	api.decode(raw, &env)
	assert.Equal(t, "CANCELLED", env.Order.Status)

	// Pagar un pedido cancelado
	status, raw = api.do(http.MethodPost, "/api/orders/"+order.ID+"/checkout", "u2", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", api.errorCode(raw))
}

func TestRouter_CrearPedido_CantidadComoQty(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPost, "/api/orders", "u2",
		`{"restaurant_id":"r1","items":[{"price":320,"qty":1},{"price":60,"qty":2}]}`)
	require.Equal(t, fiber.StatusCreated, status, "body: %s", raw)

	var env dto.OrderEnvelope
	api.decode(raw, &env)
	assert.True(t, decimal.NewFromInt(440).Equal(env.Order.Total), "total: %s", env.Order.Total)
	require.Len(t, env.Order.Items, 2)
	assert.Equal(t, 2, env.Order.Items[1].Quantity)
}

func TestRouter_CrearPedido_CuerpoDelClienteWeb(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	// El carrito del cliente web reenvía los platos del menú con qty.
	status, raw := api.do(http.MethodPost, "/api/orders", "u2",
		`{"restaurantId":"r1","items":[{"id":"m1","name":"Butter Chicken","price":320,"qty":1},{"id":"m3","name":"Garlic Naan (2 pc)","price":60,"qty":2}]}`)
	require.Equal(t, fiber.StatusCreated, status, "body: %s", raw)

	var env dto.OrderEnvelope
	api.decode(raw, &env)
	assert.Equal(t, "r1", env.Order.RestaurantID)
	assert.Equal(t, "m3", env.Order.Items[1].ItemID)
	assert.True(t, decimal.NewFromInt(440).Equal(env.Order.Total), "total: %s", env.Order.Total)
}

func TestRouter_CrearPedido_ClaveDesconocida(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPost, "/api/orders", "u2",
		`{"restaurant_id":"r1","items":[{"price":320,"amount":3}]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", api.errorCode(raw))

	status, raw = api.do(http.MethodGet, "/api/orders", "u1", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list dto.OrderListResponse
	api.decode(raw, &list)
	assert.Empty(t, list.Orders)
}

func TestRouter_Cancel_ReintentoNoCuentaTransicion(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u2")
	path := "/api/orders/" + order.ID + "/cancel"

	for i := 0; i < 3; i++ {
		status, raw := api.do(http.MethodPost, path, "u2", nil)
		require.Equal(t, fiber.StatusOK, status, "body: %s", raw)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(api.metrics.OrderTransitions.WithLabelValues("CANCELLED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(api.metrics.OrderTransitions.WithLabelValues("CREATED")))
}

func TestRouter_ListarPedidosPorAlcance(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	india := api.createR1Order("u2")
	status, _ := api.do(http.MethodPost, "/api/orders", "u6", map[string]any{
		"restaurant_id": "r3",
		"items":         []any{map[string]any{"item_id": "m8", "name": "Pastrami Sandwich", "price": 9.0, "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, status)

	list := func(userID string) []dto.OrderResponse {
		status, raw := api.do(http.MethodGet, "/api/orders", userID, nil)
		require.Equal(t, fiber.StatusOK, status)
		var out dto.OrderListResponse
		api.decode(raw, &out)
		return out.Orders
	}

	assert.Len(t, list("u1"), 2)
	india5 := list("u5")
	require.Len(t, india5, 1)
	assert.Equal(t, india.ID, india5[0].ID)
	assert.Len(t, list("u3"), 1)

	// Detalle fuera de alcance
	status, raw := api.do(http.MethodGet, "/api/orders/"+india.ID, "u6", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", api.errorCode(raw))
}

func TestRouter_Recibo(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})
	order := api.createR1Order("u2")
	path := "/api/orders/" + order.ID + "/receipt"

	status, raw := api.do(http.MethodGet, path, "u2", nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", api.errorCode(raw))

	status, _ = api.do(http.MethodPost, "/api/orders/"+order.ID+"/checkout", "u2", nil)
	require.Equal(t, fiber.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(apphttp.HeaderUserID, "u5")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "recibo-"+order.ID+".pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Métodos de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ActualizarMetodosDePago(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPut, "/api/users/u4/payment", "u1", dto.UpdatePaymentMethodsRequest{
		PaymentMethods: []dto.PaymentMethodDTO{{ID: "pm9", Type: "card", Last4: "9999"}},
	})
	require.Equal(t, fiber.StatusOK, status, "body: %s", raw)
	var env dto.UserEnvelope
	api.decode(raw, &env)
	assert.Equal(t, "u4", env.User.ID)
	require.Len(t, env.User.PaymentMethods, 1)
	assert.Equal(t, "9999", env.User.PaymentMethods[0].Last4)

	// El cambio es visible en /api/me
	_, raw = api.do(http.MethodGet, "/api/me", "u4", nil)
	var me dto.MeResponse
	api.decode(raw, &me)
	require.NotNil(t, me.User)
	assert.Equal(t, "pm9", me.User.PaymentMethods[0].ID)

	status, _ = api.do(http.MethodPut, "/api/users/u2/payment", "u2", map[string]any{"payment_methods": []any{}})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, raw = api.do(http.MethodPut, "/api/users/u99/payment", "u1", map[string]any{"payment_methods": []any{}})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", api.errorCode(raw))

	status, raw = api.do(http.MethodPut, "/api/users/u4/payment", "u1", "[rota")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", api.errorCode(raw))
}

func TestRouter_ActualizarMetodosDePago_ClaveCamelCase(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPut, "/api/users/u2/payment", "u1",
		`{"paymentMethods":[{"id":"pmX","type":"card","last4":"0000"}]}`)
	require.Equal(t, fiber.StatusOK, status, "body: %s", raw)
	var env dto.UserEnvelope
	api.decode(raw, &env)
	require.Len(t, env.User.PaymentMethods, 1)
	assert.Equal(t, "pmX", env.User.PaymentMethods[0].ID)
}

func TestRouter_ActualizarMetodosDePago_ClaveDesconocidaNoBorra(t *testing.T) {
	api := newTestAPI(t, usecase.OrderOptions{})

	status, raw := api.do(http.MethodPut, "/api/users/u2/payment", "u1",
		`{"methods":[{"id":"pmX","type":"card","last4":"0000"}]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", api.errorCode(raw))

	// u2 conserva pm2
	_, raw = api.do(http.MethodGet, "/api/me", "u2", nil)
	var me dto.MeResponse
	api.decode(raw, &me)
	require.NotNil(t, me.User)
	require.Len(t, me.User.PaymentMethods, 1)
	assert.Equal(t, "pm2", me.User.PaymentMethods[0].ID)
}
