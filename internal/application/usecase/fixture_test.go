package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fixture agrupa el almacén sembrado y los casos de uso listos para probar.
type fixture struct {
	store   *memory.Store
	engine  *policy.Engine
	orders  *usecase.OrderUseCase
	catalog *usecase.CatalogUseCase
	users   *usecase.UserUseCase
}

func newFixture(t *testing.T, opts usecase.OrderOptions) *fixture {
	t.Helper()
	store := memory.NewStore(memory.SeedData())
	engine := policy.Default()
	var seq int64
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return fmt.Sprintf("ord_%d", atomic.AddInt64(&seq, 1)) }
	}
	return &fixture{
		store:   store,
		engine:  engine,
		orders:  usecase.NewOrderUseCase(engine, store.Orders(), store.Restaurants(), opts),
		catalog: usecase.NewCatalogUseCase(engine, store.Restaurants()),
		users:   usecase.NewUserUseCase(engine, store.Users()),
	}
}

// actor carga un usuario sembrado (u1..u6).
func (f *fixture) actor(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u, "usuario %s debe existir en el seed", id)
	return u
}

// r1Request pedido de ejemplo: Butter Chicken x1 + Garlic Naan x2 = 440.
func r1Request() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		RestaurantID: "r1",
		Items: []dto.LineItemRequest{
			{ItemID: "m1", Name: "Butter Chicken", Price: decimal.NewFromInt(320), Quantity: 1},
			{ItemID: "m3", Name: "Garlic Naan (2 pc)", Price: decimal.NewFromInt(60), Quantity: 2},
		},
	}
}

func (f *fixture) createAs(t *testing.T, actorID string, in dto.CreateOrderRequest) *dto.OrderResponse {
	t.Helper()
	o, err := f.orders.Create(context.Background(), f.actor(t, actorID), in)
	require.NoError(t, err)
	return o
}
