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

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	policy *policy.Engine
	repo   repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(engine *policy.Engine, repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{policy: engine, repo: repo}
}

// ResolveActor obtiene el usuario de la identidad declarada.
// Devuelve (nil, nil) si el id está vacío o no existe: la identidad no se verifica.
func (uc *UserUseCase) ResolveActor(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, nil
	}
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver actor: %w", err)
	}
	return u, nil
}

// Me devuelve la representación del actor actual, o nil si no hay actor.
func (uc *UserUseCase) Me(actor *entity.User) *dto.UserResponse {
	return toUserResponse(actor)
}

// UpdatePaymentMethods reemplaza por completo los métodos de pago del usuario destino.
//
// Retorna:
//   - domain.ErrForbidden  si el rol no puede actualizar pagos, o si un no-ADMIN edita a otro usuario.
//   - domain.ErrNotFound   si el usuario destino no existe.
func (uc *UserUseCase) UpdatePaymentMethods(ctx context.Context, actor *entity.User, targetUserID string, methods []dto.PaymentMethodDTO) (*dto.UserResponse, error) {
	if err := uc.policy.Require(actor, policy.ActionUpdatePayment); err != nil {
		return nil, err
	}
	// Hoy solo ADMIN pasa el control anterior; este aplica si la tabla se relaja.
	if !actor.IsAdmin() && actor.ID != targetUserID {
		return nil, domain.ErrForbidden
	}
	list := make([]entity.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		list = append(list, entity.PaymentMethod{ID: m.ID, Type: m.Type, Last4: m.Last4})
	}
	u, err := uc.repo.ReplacePaymentMethods(ctx, targetUserID, list)
	if err != nil {
		return nil, fmt.Errorf("actualizar métodos de pago: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(u), nil
}
