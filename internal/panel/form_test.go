package panel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

func submitRecorder() (func(context.Context, domain.Order) error, *domain.Order, *bool) {
	var got domain.Order
	called := false
	return func(ctx context.Context, o domain.Order) error {
		got = o
		called = true
		return nil
	}, &got, &called
}

func TestOrderForm_ValidationBlocksSubmit(t *testing.T) {
	submit, _, called := submitRecorder()
	f := NewOrderForm(nil, submit)

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, *called)

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "customerName")
	assert.Contains(t, fields, "customerPhone")
	assert.Contains(t, fields, "customerEmail")
	assert.Contains(t, fields, "deliveryDate")
	assert.Contains(t, fields, "shippingType")
}

func TestOrderForm_TransportadoraRequiredFields(t *testing.T) {
	f := NewOrderForm(nil, nil)
	f.CustomerName = "Maria"
	f.CustomerEmail = "maria@usegm.com"
	f.CustomerPhone = "11999990000"
	f.DeliveryDate = "2024-02-01"
	f.ShippingType = domain.ShippingTransportadora

	errs := f.Validate()
	for _, field := range []string{"street", "number", "neighborhood", "city", "state", "transporterName"} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, "excursionName")
}

func TestOrderForm_ExcursaoRequiredFields(t *testing.T) {
	f := NewOrderForm(nil, nil)
	f.CustomerName = "Maria"
	f.CustomerEmail = "maria@usegm.com"
	f.CustomerPhone = "11999990000"
	f.DeliveryDate = "2024-02-01"
	f.ShippingType = domain.ShippingExcursao

	errs := f.Validate()
	for _, field := range []string{"excursionName", "seatNumber", "sector"} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, "street")

	f.ExcursionName = "Caravana Sul"
	f.SeatNumber = "12"
	f.Sector = "A"
	assert.Empty(t, f.Validate())
}

func TestOrderForm_LojaNeedsNoShippingFields(t *testing.T) {
	submit, got, called := submitRecorder()
	f := NewOrderForm(nil, submit)
	f.CustomerName = "Maria"
	f.CustomerEmail = "maria@usegm.com"
	f.CustomerPhone = "11999990000"
	f.DeliveryDate = "2024-02-01"
	f.ShippingType = domain.ShippingLoja

	require.NoError(t, f.Submit(context.Background()))
	assert.True(t, *called)
	assert.Equal(t, domain.ShippingLoja, got.ShippingDetails.Type)
}

func TestInStoreForm_OnlyNameAndPhoneRequired(t *testing.T) {
	submit, got, _ := submitRecorder()
	f := NewInStoreOrderForm(submit)

	errs := f.Validate()
	assert.Contains(t, errs, "customerName")
	assert.Contains(t, errs, "customerPhone")
	assert.NotContains(t, errs, "customerEmail")
	assert.NotContains(t, errs, "shippingType")

	f.CustomerName = "Cliente de Loja"
	f.CustomerPhone = "11999990000"
	f.Observations = "pagou em dinheiro"
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, domain.ShippingLoja, got.ShippingDetails.Type)
	assert.Equal(t, "pagou em dinheiro", got.Observations)
}

func TestOrderForm_DuplicateItemsStayAsRows(t *testing.T) {
	f := NewOrderForm(nil, nil)
	camiseta := domain.Product{ID: 1, Name: "Camiseta"}

	f.AddItem(camiseta, 2)
	f.AddItem(camiseta, 3)

	items := f.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestOrderForm_RemoveItem(t *testing.T) {
	f := NewOrderForm(nil, nil)
	f.AddItem(domain.Product{ID: 1, Name: "Camiseta"}, 1)
	f.AddItem(domain.Product{ID: 2, Name: "Boné"}, 1)

	require.NoError(t, f.RemoveItem(0))
	items := f.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	assert.ErrorIs(t, f.RemoveItem(5), ErrItemIndexOutOfRange)
	assert.ErrorIs(t, f.RemoveItem(-1), ErrItemIndexOutOfRange)
}

func TestOrderForm_EditModePrePopulates(t *testing.T) {
	initial := &domain.Order{
		ID: 42,
		CustomerDetails: domain.CustomerDetails{
			Name:  "Maria",
			Email: "maria@usegm.com",
			Phone: "11999990000",
		},
		ShippingDetails: domain.ShippingDetails{
			Type:          domain.ShippingExcursao,
			DeliveryDate:  "2024-02-01",
			ExcursionName: "Caravana Sul",
			SeatNumber:    "12",
			Sector:        "A",
		},
		Observations: "entregar cedo",
		Products: []domain.OrderProduct{
			{ID: 1, Name: "Camiseta", Quantity: 2},
		},
	}

	submit, got, _ := submitRecorder()
	f := NewOrderForm(initial, submit)

	assert.Equal(t, "Maria", f.CustomerName)
	assert.Equal(t, "Caravana Sul", f.ExcursionName)
	require.Len(t, f.Items(), 1)

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, int64(42), got.ID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, 2, got.Products[0].Quantity)
}

func TestOrderForm_PayloadCarriesOnlySelectedTypeFields(t *testing.T) {
	submit, got, _ := submitRecorder()
	f := NewOrderForm(nil, submit)
	f.CustomerName = "Maria"
	f.CustomerEmail = "maria@usegm.com"
	f.CustomerPhone = "11999990000"
	f.DeliveryDate = "2024-02-01"

	// The user filled excursion fields first, then switched the type.
	f.ExcursionName = "Caravana Sul"
	f.SeatNumber = "12"
	f.Sector = "A"
	f.ShippingType = domain.ShippingTransportadora
	f.Street = "Rua A"
	f.Number = "10"
	f.Neighborhood = "Centro"
	f.City = "São Paulo"
	f.State = "SP"
	f.TransporterName = "Transportes XYZ"

	require.NoError(t, f.Submit(context.Background()))

	sd := got.ShippingDetails
	assert.Equal(t, domain.ShippingTransportadora, sd.Type)
	assert.Equal(t, "Transportes XYZ", sd.TransporterName)
	assert.Empty(t, sd.ExcursionName)
	assert.Empty(t, sd.SeatNumber)
	assert.Empty(t, sd.Sector)

	// Switched back: the excursion values were retained on the form.
	f.ShippingType = domain.ShippingExcursao
	require.NoError(t, f.Submit(context.Background()))
	sd = got.ShippingDetails
	assert.Equal(t, "Caravana Sul", sd.ExcursionName)
	assert.Empty(t, sd.TransporterName)
}
