package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son resultados esperados que el llamador puede manejar; el núcleo nunca los registra.
var (
	ErrUnauthenticated      = errors.New("usuario no identificado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidState         = errors.New("operación no válida para el estado actual")
	ErrPaymentMethodMissing = errors.New("no hay método de pago registrado")
)
