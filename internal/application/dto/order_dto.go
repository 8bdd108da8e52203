package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea del pedido. quantity 0 u omitida equivale a 1.
//
// Acepta también los nombres del cliente web: id o itemId por item_id y qty por quantity.
// Cualquier otra clave se rechaza.
type LineItemRequest struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// UnmarshalJSON implementa json.Unmarshaler.
func (r *LineItemRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID   *string         `json:"item_id"`
		ItemIDC  *string         `json:"itemId"`
		ID       *string         `json:"id"`
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		Quantity *int            `json:"quantity"`
		Qty      *int            `json:"qty"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	itemID, err := pickString(raw.ItemID, raw.ItemIDC, raw.ID)
	if err != nil {
		return err
	}
	if raw.Quantity != nil && raw.Qty != nil {
		return ErrConflictingKeys
	}
	*r = LineItemRequest{ItemID: itemID, Name: raw.Name, Price: raw.Price}
	switch {
	case raw.Quantity != nil:
		r.Quantity = *raw.Quantity
	case raw.Qty != nil:
		r.Quantity = *raw.Qty
	}
	return nil
}

// CreateOrderRequest entrada para crear un pedido. items es obligatorio (puede ser []).
// restaurantId se acepta como alias de restaurant_id.
type CreateOrderRequest struct {
	RestaurantID string            `json:"restaurant_id"`
	Items        []LineItemRequest `json:"items"`
}

// UnmarshalJSON implementa json.Unmarshaler.
func (r *CreateOrderRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		RestaurantID  *string           `json:"restaurant_id"`
		RestaurantIDC *string           `json:"restaurantId"`
		Items         []LineItemRequest `json:"items"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	id, err := pickString(raw.RestaurantID, raw.RestaurantIDC)
	if err != nil {
		return err
	}
	*r = CreateOrderRequest{RestaurantID: id, Items: raw.Items}
	return nil
}

// LineItemResponse línea del pedido en la salida.
type LineItemResponse struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string             `json:"id"`
	RestaurantID string             `json:"restaurant_id"`
	Items        []LineItemResponse `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	Status       string             `json:"status"`
	CreatedBy    string             `json:"created_by"`
	Country      string             `json:"country"`
	PaidWith     *PaymentMethodDTO  `json:"paid_with,omitempty"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// OrderEnvelope envoltura de un pedido con mensaje opcional.
type OrderEnvelope struct {
	Order   OrderResponse `json:"order"`
	Message string        `json:"message,omitempty"`
}

// OrderListResponse lista de pedidos visibles.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}
