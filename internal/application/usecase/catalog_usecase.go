package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

// CatalogUseCase lecturas del catálogo filtradas por jurisdicción.
type CatalogUseCase struct {
	policy      *policy.Engine
	restaurants repository.RestaurantRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(engine *policy.Engine, restaurants repository.RestaurantRepository) *CatalogUseCase {
	return &CatalogUseCase{policy: engine, restaurants: restaurants}
}

// ListVisibleRestaurants lista los restaurantes dentro del alcance del actor
// (todos para ADMIN, los de su país para el resto).
func (uc *CatalogUseCase) ListVisibleRestaurants(ctx context.Context, actor *entity.User) ([]dto.RestaurantResponse, error) {
	if err := uc.policy.Require(actor, policy.ActionViewRestaurants); err != nil {
		return nil, err
	}
	list, err := uc.restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar restaurantes: %w", err)
	}
	visible := policy.Filter(uc.policy.ScopeFor(actor), list, func(r *entity.Restaurant) string { return r.Country })
	out := make([]dto.RestaurantResponse, 0, len(visible))
	for _, r := range visible {
		out = append(out, toRestaurantResponse(r))
	}
	return out, nil
}

// GetMenu devuelve el menú completo de un restaurante.
// domain.ErrNotFound si no existe; domain.ErrForbidden si está fuera del alcance del actor.
func (uc *CatalogUseCase) GetMenu(ctx context.Context, actor *entity.User, restaurantID string) ([]dto.MenuItemResponse, error) {
	if err := uc.policy.Require(actor, policy.ActionViewRestaurants); err != nil {
		return nil, err
	}
	rest, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("obtener restaurante: %w", err)
	}
	if rest == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanAccess(actor, rest.Country) {
		return nil, domain.ErrForbidden
	}
	return toMenuResponse(rest.Menu), nil
}
