package policy

// Scope alcance de visibilidad de un actor: sin restricción o limitado a una jurisdicción.
// El valor cero es un alcance restringido a la jurisdicción vacía, que no permite nada.
type Scope struct {
	unrestricted bool
	jurisdiction string
}

// Unrestricted alcance sin filtro (ADMIN).
func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

// RestrictedTo alcance limitado a una jurisdicción.
func RestrictedTo(jurisdiction string) Scope {
	return Scope{jurisdiction: jurisdiction}
}

// IsUnrestricted informa si el alcance no filtra.
func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

// Jurisdiction devuelve la jurisdicción y true si el alcance es restringido.
func (s Scope) Jurisdiction() (string, bool) {
	if s.unrestricted {
		return "", false
	}
	return s.jurisdiction, true
}

// Permits informa si un recurso del país indicado es visible con este alcance.
func (s Scope) Permits(country string) bool {
	if s.unrestricted {
		return true
	}
	return s.jurisdiction != "" && s.jurisdiction == country
}

// String representación legible ("*" = sin restricción).
func (s Scope) String() string {
	if s.unrestricted {
		return "*"
	}
	return s.jurisdiction
}

// Filter devuelve los elementos cuyo país está dentro del alcance.
func Filter[T any](s Scope, items []T, country func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.Permits(country(it)) {
			out = append(out, it)
		}
	}
	return out
}
