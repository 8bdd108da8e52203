package entity

import "github.com/shopspring/decimal"

// MenuItem plato del menú de un restaurante. Pertenece a un único restaurante.
type MenuItem struct {
	ID    string
	Name  string
	Price decimal.Decimal // no negativo, sin moneda
}

// Restaurant entrada de catálogo asociada a un país (jurisdicción). Solo lectura tras el seed.
type Restaurant struct {
	ID      string
	Name    string
	Country string
	Menu    []MenuItem
}

// Clone devuelve una copia profunda del restaurante.
func (r *Restaurant) Clone() *Restaurant {
	if r == nil {
		return nil
	}
	c := *r
	c.Menu = append([]MenuItem{}, r.Menu...)
	return &c
}
