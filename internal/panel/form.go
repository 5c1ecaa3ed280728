package panel

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

// FieldErrors maps a field name to its inline validation message. A non-empty
// map blocks submission before any network call.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

var ErrItemIndexOutOfRange = errors.New("line item index out of range")

// LineItem is one in-progress row of the order being assembled. The same
// product chosen twice stays as two rows; rows are never merged.
type LineItem struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
}

// OrderForm collects customer, shipping and line-item data into one order
// submission payload. It never calls the backend itself: Submit hands the
// assembled payload to the handler supplied by the embedding list component.
//
// In edit mode (built with an existing order) every field is pre-populated,
// including the line items reconstructed from the order's products. Switching
// the shipping type afterwards does not clear the other type's fields; only
// the selected type's sub-fields end up in the payload.
type OrderForm struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ShippingType    domain.ShippingType
	Street          string
	Number          string
	Neighborhood    string
	City            string
	State           string
	DeliveryDate    string
	ExcursionName   string
	SeatNumber      string
	Sector          string
	TransporterName string

	Observations string

	id      int64
	inStore bool
	items   []LineItem
	submit  func(context.Context, domain.Order) error
}

// NewOrderForm builds the standard order form. A non-nil initial order puts
// the form in edit mode.
func NewOrderForm(initial *domain.Order, submit func(context.Context, domain.Order) error) *OrderForm {
	f := &OrderForm{submit: submit}
	if initial == nil {
		return f
	}

	f.id = initial.ID
	f.CustomerName = initial.CustomerDetails.Name
	f.CustomerEmail = initial.CustomerDetails.Email
	f.CustomerPhone = initial.CustomerDetails.Phone
	f.ShippingType = initial.ShippingDetails.Type
	f.Street = initial.ShippingDetails.Street
	f.Number = initial.ShippingDetails.Number
	f.Neighborhood = initial.ShippingDetails.Neighborhood
	f.City = initial.ShippingDetails.City
	f.State = initial.ShippingDetails.State
	f.DeliveryDate = initial.ShippingDetails.DeliveryDate
	f.ExcursionName = initial.ShippingDetails.ExcursionName
	f.SeatNumber = initial.ShippingDetails.SeatNumber
	f.Sector = initial.ShippingDetails.Sector
	f.TransporterName = initial.ShippingDetails.TransporterName
	f.Observations = initial.Observations
	for _, p := range initial.Products {
		f.items = append(f.items, LineItem{
			ProductID: p.ID,
			Quantity:  p.Quantity,
			Name:      p.Name,
			Image:     p.Image,
		})
	}
	return f
}

// NewInStoreOrderForm builds the in-store sale variant: customer name, phone,
// items and observations only. The shipping detail is forced to LOJA.
func NewInStoreOrderForm(submit func(context.Context, domain.Order) error) *OrderForm {
	return &OrderForm{inStore: true, submit: submit}
}

// AddItem appends a line item chosen through the product selector.
func (f *OrderForm) AddItem(p domain.Product, quantity int) {
	f.items = append(f.items, LineItem{
		ProductID: p.ID,
		Quantity:  quantity,
		Name:      p.Name,
		Image:     p.Image,
	})
}

// RemoveItem deletes the row at index.
func (f *OrderForm) RemoveItem(index int) error {
	if index < 0 || index >= len(f.items) {
		return ErrItemIndexOutOfRange
	}
	f.items = append(f.items[:index], f.items[index+1:]...)
	return nil
}

func (f *OrderForm) Items() []LineItem {
	return append([]LineItem(nil), f.items...)
}

// Submit validates the form and, when it passes, assembles the payload and
// hands it to the submit handler. Validation failure returns FieldErrors and
// the handler is never called.
func (f *OrderForm) Submit(ctx context.Context) error {
	if errs := f.Validate(); len(errs) > 0 {
		return errs
	}
	return f.submit(ctx, f.payload())
}

// Validate applies the required-field rules; which shipping sub-fields are
// required depends on the chosen shipping type.
func (f *OrderForm) Validate() FieldErrors {
	errs := FieldErrors{}
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = "campo obrigatório"
		}
	}

	require("customerName", f.CustomerName)
	require("customerPhone", f.CustomerPhone)
	if f.inStore {
		return errs
	}

	require("customerEmail", f.CustomerEmail)
	require("deliveryDate", f.DeliveryDate)
	if !f.ShippingType.Valid() {
		errs["shippingType"] = "campo obrigatório"
		return errs
	}

	switch f.ShippingType {
	case domain.ShippingTransportadora:
		require("street", f.Street)
		require("number", f.Number)
		require("neighborhood", f.Neighborhood)
		require("city", f.City)
		require("state", f.State)
		require("transporterName", f.TransporterName)
	case domain.ShippingExcursao:
		require("excursionName", f.ExcursionName)
		require("seatNumber", f.SeatNumber)
		require("sector", f.Sector)
	case domain.ShippingLoja:
		// No shipping sub-fields.
	}
	return errs
}

func (f *OrderForm) payload() domain.Order {
	o := domain.Order{
		ID: f.id,
		CustomerDetails: domain.CustomerDetails{
			Name:  f.CustomerName,
			Email: f.CustomerEmail,
			Phone: f.CustomerPhone,
		},
		Observations: f.Observations,
	}
	for _, item := range f.items {
		o.Products = append(o.Products, domain.OrderProduct{
			ID:       item.ProductID,
			Quantity: item.Quantity,
			Name:     item.Name,
			Image:    item.Image,
		})
	}

	if f.inStore {
		o.ShippingDetails = domain.ShippingDetails{Type: domain.ShippingLoja}
		return o
	}

	o.ShippingDetails = domain.ShippingDetails{
		Type:         f.ShippingType,
		Street:       f.Street,
		Number:       f.Number,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        f.State,
		DeliveryDate: f.DeliveryDate,
	}
	switch f.ShippingType {
	case domain.ShippingExcursao:
		o.ShippingDetails.ExcursionName = f.ExcursionName
		o.ShippingDetails.SeatNumber = f.SeatNumber
		o.ShippingDetails.Sector = f.Sector
	case domain.ShippingTransportadora:
		o.ShippingDetails.TransporterName = f.TransporterName
	}
	return o
}
