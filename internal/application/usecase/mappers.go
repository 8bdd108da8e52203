package usecase

import (
	"github.com/jhoicas/Ordering-api/internal/application/dto"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
)

func toPaymentMethodDTO(pm entity.PaymentMethod) dto.PaymentMethodDTO {
	return dto.PaymentMethodDTO{ID: pm.ID, Type: pm.Type, Last4: pm.Last4}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	methods := make([]dto.PaymentMethodDTO, 0, len(u.PaymentMethods))
	for _, pm := range u.PaymentMethods {
		methods = append(methods, toPaymentMethodDTO(pm))
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Role:           string(u.Role),
		Country:        u.Country,
		PaymentMethods: methods,
	}
}

func toMenuResponse(menu []entity.MenuItem) []dto.MenuItemResponse {
	out := make([]dto.MenuItemResponse, 0, len(menu))
	for _, m := range menu {
		out = append(out, dto.MenuItemResponse{ID: m.ID, Name: m.Name, Price: m.Price})
	}
	return out
}

func toRestaurantResponse(r *entity.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		ID:      r.ID,
		Name:    r.Name,
		Country: r.Country,
		Menu:    toMenuResponse(r.Menu),
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.LineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.LineItemResponse{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	out := &dto.OrderResponse{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		Items:        items,
		Total:        o.Total,
		Status:       string(o.Status),
		CreatedBy:    o.CreatedBy,
		Country:      o.Country,
		PaidAt:       o.PaidAt,
		CreatedAt:    o.CreatedAt,
	}
	if o.PaidWith != nil {
		pm := toPaymentMethodDTO(*o.PaidWith)
		out.PaidWith = &pm
	}
	return out
}
