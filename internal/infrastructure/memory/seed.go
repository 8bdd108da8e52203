package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// Seed datos iniciales del almacén.
type Seed struct {
	Users       []*entity.User
	Restaurants []*entity.Restaurant
	Orders      []*entity.Order
}

// SeedData datos de demostración: seis usuarios, cuatro restaurantes (India / America) y ningún pedido.
// cmd/seed genera el SQL equivalente para PostgreSQL a partir de esta misma función.
func SeedData() Seed {
	return Seed{
		Users: []*entity.User{
			{ID: "u1", Name: "Nick Fury", Role: entity.RoleAdmin, Country: entity.CountryGlobal,
				PaymentMethods: []entity.PaymentMethod{{ID: "pm1", Type: "card", Last4: "4242"}}},
			{ID: "u2", Name: "Captain Marvel", Role: entity.RoleManager, Country: "India",
				PaymentMethods: []entity.PaymentMethod{{ID: "pm2", Type: "card", Last4: "1111"}}},
			{ID: "u3", Name: "Captain America", Role: entity.RoleManager, Country: "America",
				PaymentMethods: []entity.PaymentMethod{{ID: "pm3", Type: "card", Last4: "2222"}}},
			{ID: "u4", Name: "Thanos", Role: entity.RoleMember, Country: "India"},
			{ID: "u5", Name: "Thor", Role: entity.RoleMember, Country: "India"},
			{ID: "u6", Name: "Travis", Role: entity.RoleMember, Country: "America"},
		},
		Restaurants: []*entity.Restaurant{
			{ID: "r1", Name: "Bombay Bites", Country: "India", Menu: []entity.MenuItem{
				item("m1", "Butter Chicken", "320"),
				item("m2", "Paneer Tikka", "240"),
				item("m3", "Garlic Naan (2 pc)", "60"),
				item("m4", "Chicken Biryani", "280"),
			}},
			{ID: "r2", Name: "Mumbai Rolls", Country: "India", Menu: []entity.MenuItem{
				item("m5", "Kathi Roll", "130"),
				item("m6", "Veg Frankie", "90"),
				item("m7", "Chicken Mayo Roll", "160"),
			}},
			{ID: "r3", Name: "NY Deli", Country: "America", Menu: []entity.MenuItem{
				item("m8", "Pastrami Sandwich", "9.0"),
				item("m9", "Cheesecake Slice", "5.5"),
				item("m10", "Bagel w/ Cream Cheese", "3.5"),
				item("m11", "NY Pizza Slice", "4.0"),
			}},
			{ID: "r4", Name: "LA Taco Hub", Country: "America", Menu: []entity.MenuItem{
				item("m12", "Beef Taco", "3.0"),
				item("m13", "Chicken Taco", "2.5"),
				item("m14", "Guacamole Dip", "1.5"),
			}},
		},
	}
}

func item(id, name, price string) entity.MenuItem {
	return entity.MenuItem{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}
