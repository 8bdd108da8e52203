package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

// OrderOptions ajustes del ciclo de vida de pedidos.
type OrderOptions struct {
	// EnforceCreateScope exige que el restaurante exista y esté dentro del alcance del actor
	// al crear un pedido. Desactivado por defecto: la creación no valida jurisdicción.
	EnforceCreateScope bool
	// OnTransition se invoca tras cada cambio de estado persistido, con el estado destino.
	// Un re-cancel idempotente no lo dispara.
	OnTransition func(to entity.OrderStatus)
	Now          func() time.Time
	NewID        func() string
}

// OrderUseCase dueño de la máquina de estados del pedido: CREATED -> PAID | CANCELLED.
// Es el único componente que modifica Status, PaidWith y PaidAt.
type OrderUseCase struct {
	policy      *policy.Engine
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	opts        OrderOptions
}

// NewOrderUseCase construye el caso de uso. Now y NewID son opcionales.
func NewOrderUseCase(
	engine *policy.Engine,
	orders repository.OrderRepository,
	restaurants repository.RestaurantRepository,
	opts OrderOptions,
) *OrderUseCase {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return "ord_" + uuid.New().String() }
	}
	if opts.OnTransition == nil {
		opts.OnTransition = func(entity.OrderStatus) {}
	}
	return &OrderUseCase{
		policy:      engine,
		orders:      orders,
		restaurants: restaurants,
		opts:        opts,
	}
}

// Create crea un pedido en estado CREATED con el país del actor y el total calculado.
func (uc *OrderUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.policy.Require(actor, policy.ActionCreateOrder); err != nil {
		return nil, err
	}
	if in.RestaurantID == "" || in.Items == nil {
		return nil, fmt.Errorf("%w: restaurant_id e items[] son requeridos", domain.ErrInvalidInput)
	}
	items := make([]entity.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 0 || it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio y cantidad no pueden ser negativos", domain.ErrInvalidInput)
		}
		items = append(items, entity.LineItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	if uc.opts.EnforceCreateScope {
		rest, err := uc.restaurants.GetByID(ctx, in.RestaurantID)
		if err != nil {
			return nil, fmt.Errorf("obtener restaurante: %w", err)
		}
		if rest == nil {
			return nil, domain.ErrNotFound
		}
		if !uc.policy.CanAccess(actor, rest.Country) {
			return nil, domain.ErrForbidden
		}
	}

	order := entity.NewOrder(uc.opts.NewID(), in.RestaurantID, items, actor, uc.opts.Now())
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("guardar pedido: %w", err)
	}
	uc.opts.OnTransition(entity.OrderStatusCreated)
	return toOrderResponse(order), nil
}

// Checkout paga el pedido con el primer método de pago del actor.
//
// Orden de validación: ErrNotFound, ErrForbidden (rol place_order o país distinto),
// ErrInvalidState (no está en CREATED), ErrPaymentMethodMissing.
// Todo ocurre dentro de OrderRepository.Update: dos checkouts concurrentes no pueden ganar ambos.
func (uc *OrderUseCase) Checkout(ctx context.Context, actor *entity.User, orderID string) (*dto.OrderResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	updated, err := uc.orders.Update(ctx, orderID, func(o *entity.Order) error {
		if err := uc.authorizeOrder(actor, policy.ActionPlaceOrder, o); err != nil {
			return err
		}
		if !o.CanTransitionTo(entity.OrderStatusPaid) {
			return fmt.Errorf("%w: el pedido está en %s", domain.ErrInvalidState, o.Status)
		}
		pm, ok := actor.PrimaryPaymentMethod()
		if !ok {
			return domain.ErrPaymentMethodMissing
		}
		o.MarkPaid(pm, uc.opts.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.opts.OnTransition(entity.OrderStatusPaid)
	return toOrderResponse(updated), nil
}

// Cancel cancela el pedido. Un pedido PAID nunca se cancela (ErrInvalidState);
// cancelar uno ya CANCELLED se acepta sin cambios.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor *entity.User, orderID string) (*dto.OrderResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	changed := false
	updated, err := uc.orders.Update(ctx, orderID, func(o *entity.Order) error {
		if err := uc.authorizeOrder(actor, policy.ActionCancelOrder, o); err != nil {
			return err
		}
		if !o.CanTransitionTo(entity.OrderStatusCancelled) {
			return fmt.Errorf("%w: no se puede cancelar un pedido %s", domain.ErrInvalidState, o.Status)
		}
		changed = o.Status != entity.OrderStatusCancelled
		o.Status = entity.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	if changed {
		uc.opts.OnTransition(entity.OrderStatusCancelled)
	}
	return toOrderResponse(updated), nil
}

// ListVisible lista los pedidos dentro del alcance del actor.
func (uc *OrderUseCase) ListVisible(ctx context.Context, actor *entity.User) ([]dto.OrderResponse, error) {
	if err := uc.policy.Require(actor, policy.ActionViewOrders); err != nil {
		return nil, err
	}
	list, err := uc.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	visible := policy.Filter(uc.policy.ScopeFor(actor), list, func(o *entity.Order) string { return o.Country })
	out := make([]dto.OrderResponse, 0, len(visible))
	for _, o := range visible {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// GetVisible obtiene un pedido si está dentro del alcance del actor.
func (uc *OrderUseCase) GetVisible(ctx context.Context, actor *entity.User, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.loadVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (uc *OrderUseCase) loadVisible(ctx context.Context, actor *entity.User, orderID string) (*entity.Order, error) {
	if err := uc.policy.Require(actor, policy.ActionViewOrders); err != nil {
		return nil, err
	}
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanAccess(actor, o.Country) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// authorizeOrder aplica los dos controles sobre un pedido concreto: rol para la acción
// y jurisdicción (ADMIN o mismo país que el pedido).
func (uc *OrderUseCase) authorizeOrder(actor *entity.User, action policy.Action, o *entity.Order) error {
	if err := uc.policy.Require(actor, action); err != nil {
		return err
	}
	if !uc.policy.CanAccess(actor, o.Country) {
		return domain.ErrForbidden
	}
	return nil
}
