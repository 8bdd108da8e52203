package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ordering-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrderRequest
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrderRequest_NombresSnakeCase(t *testing.T) {
	var in dto.CreateOrderRequest
	err := json.Unmarshal([]byte(`{"restaurant_id":"r1","items":[{"item_id":"m1","name":"Butter Chicken","price":320,"quantity":3}]}`), &in)
	require.NoError(t, err)

	assert.Equal(t, "r1", in.RestaurantID)
	require.Len(t, in.Items, 1)
	assert.Equal(t, "m1", in.Items[0].ItemID)
	assert.Equal(t, 3, in.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(320).Equal(in.Items[0].Price))
}

func TestCreateOrderRequest_NombresDelClienteWeb(t *testing.T) {
	var in dto.CreateOrderRequest
	err := json.Unmarshal([]byte(`{"restaurantId":"r1","items":[{"id":"m3","name":"Garlic Naan (2 pc)","price":60,"qty":2},{"itemId":"m1","price":320,"qty":1}]}`), &in)
	require.NoError(t, err)

	assert.Equal(t, "r1", in.RestaurantID)
	require.Len(t, in.Items, 2)
	assert.Equal(t, "m3", in.Items[0].ItemID)
	assert.Equal(t, 2, in.Items[0].Quantity)
	assert.Equal(t, "m1", in.Items[1].ItemID)
	assert.Equal(t, 1, in.Items[1].Quantity)
}

func TestCreateOrderRequest_ItemsAusentesVsVacios(t *testing.T) {
	var missing dto.CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"restaurant_id":"r1"}`), &missing))
	assert.Nil(t, missing.Items)

	var empty dto.CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"restaurant_id":"r1","items":[]}`), &empty))
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestCreateOrderRequest_Rechazos(t *testing.T) {
	cases := map[string]string{
		"clave desconocida":         `{"restaurant_id":"r1","items":[],"note":"x"}`,
		"clave desconocida en ítem": `{"restaurant_id":"r1","items":[{"price":10,"amount":2}]}`,
		"restaurante duplicado":     `{"restaurant_id":"r1","restaurantId":"r2","items":[]}`,
		"cantidad duplicada":        `{"restaurant_id":"r1","items":[{"price":10,"qty":1,"quantity":2}]}`,
		"id de ítem duplicado":      `{"restaurant_id":"r1","items":[{"id":"m1","item_id":"m2","price":10}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in dto.CreateOrderRequest
			assert.Error(t, json.Unmarshal([]byte(body), &in))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdatePaymentMethodsRequest
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePaymentMethodsRequest_Alias(t *testing.T) {
	for _, key := range []string{"payment_methods", "paymentMethods"} {
		t.Run(key, func(t *testing.T) {
			var in dto.UpdatePaymentMethodsRequest
			err := json.Unmarshal([]byte(`{"`+key+`":[{"id":"pmX","type":"card","last4":"0000"}]}`), &in)
			require.NoError(t, err)
			require.Len(t, in.PaymentMethods, 1)
			assert.Equal(t, "pmX", in.PaymentMethods[0].ID)
		})
	}
}

func TestUpdatePaymentMethodsRequest_NullEsListaVacia(t *testing.T) {
	var in dto.UpdatePaymentMethodsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"paymentMethods":null}`), &in))
	assert.Empty(t, in.PaymentMethods)
}

func TestUpdatePaymentMethodsRequest_Rechazos(t *testing.T) {
	cases := map[string]string{
		"clave desconocida": `{"methods":[{"id":"pmX"}]}`,
		"ambos nombres":     `{"payment_methods":[],"paymentMethods":[]}`,
		"campo extra":       `{"paymentMethods":[{"id":"pmX","brand":"visa"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in dto.UpdatePaymentMethodsRequest
			assert.Error(t, json.Unmarshal([]byte(body), &in))
		})
	}
}
