package policy

import "github.com/jhoicas/Ordering-api/internal/domain/entity"

// Action nombre de una acción que un actor puede intentar.
type Action string

// Acciones conocidas por el motor.
const (
	ActionViewRestaurants Action = "view_restaurants"
	ActionCreateOrder     Action = "create_order"
	ActionPlaceOrder      Action = "place_order"
	ActionCancelOrder     Action = "cancel_order"
	ActionUpdatePayment   Action = "update_payment"
	ActionViewOrders      Action = "view_orders"
)

// Actions devuelve todas las acciones conocidas.
func Actions() []Action {
	return []Action{
		ActionViewRestaurants,
		ActionCreateOrder,
		ActionPlaceOrder,
		ActionCancelOrder,
		ActionUpdatePayment,
		ActionViewOrders,
	}
}

// Rules tabla acción -> roles permitidos.
type Rules map[Action][]entity.Role

// DefaultRules tabla estática de roles por acción.
func DefaultRules() Rules {
	return Rules{
		ActionViewRestaurants: {entity.RoleAdmin, entity.RoleManager, entity.RoleMember},
		ActionCreateOrder:     {entity.RoleAdmin, entity.RoleManager, entity.RoleMember},
		ActionPlaceOrder:      {entity.RoleAdmin, entity.RoleManager},
		ActionCancelOrder:     {entity.RoleAdmin, entity.RoleManager},
		ActionUpdatePayment:   {entity.RoleAdmin},
		ActionViewOrders:      {entity.RoleAdmin, entity.RoleManager, entity.RoleMember},
	}
}
