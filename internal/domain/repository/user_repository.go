package repository

import (
	"context"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID devuelve (nil, nil) si el usuario no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// ReplacePaymentMethods reemplaza la lista completa de métodos de pago (sin merge).
	// Devuelve (nil, nil) si el usuario no existe.
	ReplacePaymentMethods(ctx context.Context, id string, methods []entity.PaymentMethod) (*entity.User, error)
}
