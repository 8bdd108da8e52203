package dto

// PaymentMethodDTO método de pago en la API.
type PaymentMethodDTO struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Last4 string `json:"last4"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Role           string             `json:"role"`
	Country        string             `json:"country"`
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`
}

// MeResponse salida de GET /api/me; User es null si no hay actor.
type MeResponse struct {
	User *UserResponse `json:"user"`
}

// UserEnvelope envoltura de un usuario.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UpdatePaymentMethodsRequest entrada para reemplazar los métodos de pago.
// payment_methods (o paymentMethods) ausente o null equivale a lista vacía.
// Cualquier otra clave se rechaza.
type UpdatePaymentMethodsRequest struct {
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`
}

// UnmarshalJSON implementa json.Unmarshaler.
func (r *UpdatePaymentMethodsRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		PaymentMethods  *[]PaymentMethodDTO `json:"payment_methods"`
		PaymentMethodsC *[]PaymentMethodDTO `json:"paymentMethods"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	if raw.PaymentMethods != nil && raw.PaymentMethodsC != nil {
		return ErrConflictingKeys
	}
	*r = UpdatePaymentMethodsRequest{}
	switch {
	case raw.PaymentMethods != nil:
		r.PaymentMethods = *raw.PaymentMethods
	case raw.PaymentMethodsC != nil:
		r.PaymentMethods = *raw.PaymentMethodsC
	}
	return nil
}
