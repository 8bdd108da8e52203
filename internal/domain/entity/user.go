package entity

// Role rol de un usuario dentro del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// CountryGlobal es el país centinela de los ADMIN; no es un tenant real.
const CountryGlobal = "GLOBAL"

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

// PaymentMethod método de pago registrado por un usuario.
type PaymentMethod struct {
	ID    string
	Type  string // card, upi, ...
	Last4 string
}

// User representa a un usuario del sistema. Role y Country no cambian después de la creación;
// solo PaymentMethods se reemplaza (lista completa, sin merge).
type User struct {
	ID             string
	Name           string
	Role           Role
	Country        string
	PaymentMethods []PaymentMethod
}

// IsAdmin informa si el usuario tiene rol ADMIN.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// PrimaryPaymentMethod devuelve el primer método de pago o false si no tiene ninguno.
func (u *User) PrimaryPaymentMethod() (PaymentMethod, bool) {
	if u == nil || len(u.PaymentMethods) == 0 {
		return PaymentMethod{}, false
	}
	return u.PaymentMethods[0], true
}

// Clone devuelve una copia profunda del usuario.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PaymentMethods = append([]PaymentMethod{}, u.PaymentMethods...)
	return &c
}
