package dto

import "github.com/shopspring/decimal"

// MenuItemResponse plato del menú.
type MenuItemResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// RestaurantResponse salida de un restaurante con su menú.
type RestaurantResponse struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Country string             `json:"country"`
	Menu    []MenuItemResponse `json:"menu"`
}

// RestaurantListResponse lista de restaurantes visibles.
type RestaurantListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

// MenuResponse menú de un restaurante.
type MenuResponse struct {
	Menu []MenuItemResponse `json:"menu"`
}
