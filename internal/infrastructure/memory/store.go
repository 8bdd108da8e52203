// Package memory implementa los puertos de repositorio en memoria.
// Un único Store es dueño de usuarios, restaurantes y pedidos; un RWMutex protege las tres
// colecciones y Update mantiene el bloqueo de escritura durante lectura-validación-escritura.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.RestaurantRepository = (*RestaurantRepo)(nil)
	_ repository.OrderRepository      = (*OrderRepo)(nil)
)

// Store almacén en memoria. Los valores se copian al entrar y al salir.
type Store struct {
	mu          sync.RWMutex
	users       []*entity.User
	restaurants []*entity.Restaurant
	orders      []*entity.Order
}

// NewStore construye el almacén con los datos iniciales indicados.
func NewStore(seed Seed) *Store {
	s := &Store{}
	for _, u := range seed.Users {
		s.users = append(s.users, u.Clone())
	}
	for _, r := range seed.Restaurants {
		s.restaurants = append(s.restaurants, r.Clone())
	}
	for _, o := range seed.Orders {
		s.orders = append(s.orders, o.Clone())
	}
	return s
}

// Users devuelve el repositorio de usuarios respaldado por este almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Restaurants devuelve el repositorio de restaurantes respaldado por este almacén.
func (s *Store) Restaurants() *RestaurantRepo { return &RestaurantRepo{s: s} }

// Orders devuelve el repositorio de pedidos respaldado por este almacén.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct {
	s *Store
}

// GetByID busca un usuario por ID (búsqueda lineal).
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u := r.s.findUser(id); u != nil {
		return u.Clone(), nil
	}
	return nil, nil
}

// List devuelve todos los usuarios en orden de inserción.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// ReplacePaymentMethods reemplaza la lista de métodos de pago del usuario.
func (r *UserRepo) ReplacePaymentMethods(_ context.Context, id string, methods []entity.PaymentMethod) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.findUser(id)
	if u == nil {
		return nil, nil
	}
	u.PaymentMethods = append([]entity.PaymentMethod{}, methods...)
	return u.Clone(), nil
}

func (s *Store) findUser(id string) *entity.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ── Restaurants ──────────────────────────────────────────────────────────────

// RestaurantRepo implementación en memoria de repository.RestaurantRepository.
type RestaurantRepo struct {
	s *Store
}

// GetByID busca un restaurante por ID.
func (r *RestaurantRepo) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rest := range r.s.restaurants {
		if rest.ID == id {
			return rest.Clone(), nil
		}
	}
	return nil, nil
}

// List devuelve el catálogo completo.
func (r *RestaurantRepo) List(_ context.Context) ([]*entity.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Restaurant, 0, len(r.s.restaurants))
	for _, rest := range r.s.restaurants {
		out = append(out, rest.Clone())
	}
	return out, nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

// OrderRepo implementación en memoria de repository.OrderRepository.
type OrderRepo struct {
	s *Store
}

// Create agrega el pedido al final de la colección.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders = append(r.s.orders, order.Clone())
	return nil
}

// GetByID busca un pedido por ID.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i := r.s.orderIndex(id); i >= 0 {
		return r.s.orders[i].Clone(), nil
	}
	return nil, nil
}

// List devuelve todos los pedidos en orden de creación.
func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

// Update aplica fn sobre una copia del pedido con el bloqueo de escritura tomado
// y reemplaza el original solo si fn no falla.
func (r *OrderRepo) Update(_ context.Context, id string, fn repository.OrderMutator) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.orderIndex(id)
	if i < 0 {
		return nil, nil
	}
	working := r.s.orders[i].Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.s.orders[i] = working
	return working.Clone(), nil
}

func (s *Store) orderIndex(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
