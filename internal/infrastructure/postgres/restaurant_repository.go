package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL (solo lectura).
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador.
func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepo {
	return &RestaurantRepo{q: pool}
}

// GetByID obtiene un restaurante con su menú. Retorna (nil, nil) si no existe.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.q.QueryRow(ctx, `SELECT id, name, country FROM restaurants WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, name, price FROM menu_items WHERE restaurant_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		rest.Menu = append(rest.Menu, m)
	}
	return &rest, rows.Err()
}

// List devuelve el catálogo completo en el orden de carga.
func (r *RestaurantRepo) List(ctx context.Context) ([]*entity.Restaurant, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, country FROM restaurants ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Restaurant
	index := make(map[string]*entity.Restaurant)
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Country); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, &rest)
		index[rest.ID] = &rest
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	menuRows, err := r.q.Query(ctx,
		`SELECT restaurant_id, id, name, price FROM menu_items ORDER BY restaurant_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer menuRows.Close()
	for menuRows.Next() {
		var restID string
		var m entity.MenuItem
		if err := menuRows.Scan(&restID, &m.ID, &m.Name, &m.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		if rest, ok := index[restID]; ok {
			rest.Menu = append(rest.Menu, m)
		}
	}
	return list, menuRows.Err()
}
