package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

// Estados del pedido. CREATED es el inicial; PAID y CANCELLED son terminales.
const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// LineItem línea del pedido capturada al crearlo; no cambia si luego cambia el catálogo.
type LineItem struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal devuelve Price × Quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order pedido de un usuario. Country es una foto del país del creador al momento de crear
// y se usa para todas las decisiones de alcance posteriores.
type Order struct {
	ID           string
	RestaurantID string
	Items        []LineItem
	Total        decimal.Decimal // calculado una sola vez en NewOrder
	Status       OrderStatus
	CreatedBy    string
	Country      string
	PaidWith     *PaymentMethod // solo en PAID
	PaidAt       *time.Time     // solo en PAID
	CreatedAt    time.Time
}

// NewOrder construye un pedido en estado CREATED y calcula el total.
// Quantity 0 se interpreta como 1.
func NewOrder(id, restaurantID string, items []LineItem, createdBy *User, now time.Time) *Order {
	lines := make([]LineItem, len(items))
	total := decimal.Zero
	for i, it := range items {
		if it.Quantity == 0 {
			it.Quantity = 1
		}
		lines[i] = it
		total = total.Add(it.Subtotal())
	}
	return &Order{
		ID:           id,
		RestaurantID: restaurantID,
		Items:        lines,
		Total:        total,
		Status:       OrderStatusCreated,
		CreatedBy:    createdBy.ID,
		Country:      createdBy.Country,
		CreatedAt:    now,
	}
}

// CanTransitionTo valida la máquina de estados:
// CREATED -> PAID, CREATED -> CANCELLED, CANCELLED -> CANCELLED (re-cancelación idempotente).
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusCreated:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusCancelled:
		return next == OrderStatusCancelled
	}
	return false
}

// MarkPaid pasa el pedido a PAID con el método de pago y la fecha indicados.
// El llamador debe validar CanTransitionTo antes.
func (o *Order) MarkPaid(pm PaymentMethod, at time.Time) {
	o.Status = OrderStatusPaid
	o.PaidWith = &pm
	o.PaidAt = &at
}

// Clone devuelve una copia profunda del pedido.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]LineItem{}, o.Items...)
	if o.PaidWith != nil {
		pm := *o.PaidWith
		c.PaidWith = &pm
	}
	if o.PaidAt != nil {
		at := *o.PaidAt
		c.PaidAt = &at
	}
	return &c
}
