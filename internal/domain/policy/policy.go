// Package policy es el punto central de decisión de autorización.
//
// Separa dos controles independientes:
//   - elegibilidad por rol (estática, por acción): Authorize / Require
//   - alcance por jurisdicción (dinámico, por recurso): ScopeFor / CanAccess
//
// Los casos de uso aplican ambos; el primero no implica el segundo.
package policy

import (
	"fmt"

	"github.com/jhoicas/Ordering-api/internal/domain"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

// Decision resultado de Authorize.
type Decision uint8

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}
	return "DENY"
}

// Engine motor de políticas. Inmutable después de construido; seguro para uso concurrente.
type Engine struct {
	allowed map[Action]map[entity.Role]struct{}
}

// New construye el motor a partir de la tabla de reglas.
// Falla si alguna acción conocida no tiene regla o si aparece un rol desconocido.
func New(rules Rules) (*Engine, error) {
	allowed := make(map[Action]map[entity.Role]struct{}, len(rules))
	for action, roles := range rules {
		set := make(map[entity.Role]struct{}, len(roles))
		for _, r := range roles {
			if !r.Valid() {
				return nil, fmt.Errorf("policy: rol desconocido %q en acción %q", r, action)
			}
			set[r] = struct{}{}
		}
		allowed[action] = set
	}
	for _, a := range Actions() {
		if _, ok := allowed[a]; !ok {
			return nil, fmt.Errorf("policy: acción %q sin regla", a)
		}
	}
	return &Engine{allowed: allowed}, nil
}

// Default construye el motor con DefaultRules. Una tabla incompleta es un error de programación.
func Default() *Engine {
	e, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return e
}

// Authorize decide si el rol del actor puede intentar la acción.
// DENY si no hay actor, la acción es desconocida o el rol no está en el conjunto.
func (e *Engine) Authorize(actor *entity.User, action Action) Decision {
	if actor == nil {
		return Deny
	}
	roles, ok := e.allowed[action]
	if !ok {
		return Deny
	}
	if _, ok := roles[actor.Role]; !ok {
		return Deny
	}
	return Allow
}

// Require es Authorize expresado como error:
// domain.ErrUnauthenticated sin actor, domain.ErrForbidden si la decisión es DENY.
func (e *Engine) Require(actor *entity.User, action Action) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if e.Authorize(actor, action) != Allow {
		return domain.ErrForbidden
	}
	return nil
}

// ScopeFor calcula el alcance del actor: sin restricción para ADMIN, su país en otro caso.
func (e *Engine) ScopeFor(actor *entity.User) Scope {
	if actor.IsAdmin() {
		return Unrestricted()
	}
	if actor == nil {
		return Scope{}
	}
	return RestrictedTo(actor.Country)
}

// CanAccess informa si un recurso del país indicado está dentro del alcance del actor.
func (e *Engine) CanAccess(actor *entity.User, resourceCountry string) bool {
	return e.ScopeFor(actor).Permits(resourceCountry)
}
