package repository

import (
	"context"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// RestaurantRepository puerto de solo lectura para el catálogo.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	List(ctx context.Context) ([]*entity.Restaurant, error)
}
