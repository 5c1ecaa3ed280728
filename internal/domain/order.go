package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusAberto   OrderStatus = "ABERTO"
	StatusLoja     OrderStatus = "LOJA"
	StatusCompleto OrderStatus = "COMPLETO"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAberto, StatusLoja, StatusCompleto:
		return true
	}
	return false
}

type ShippingType string

const (
	ShippingTransportadora ShippingType = "TRANSPORTADORA"
	ShippingExcursao       ShippingType = "EXCURSAO"
	ShippingLoja           ShippingType = "LOJA"
)

func (t ShippingType) Valid() bool {
	switch t {
	case ShippingTransportadora, ShippingExcursao, ShippingLoja:
		return true
	}
	return false
}

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone"`
}

type ShippingDetails struct {
	Type            ShippingType `json:"type"`
	Street          string       `json:"street,omitempty"`
	Number          string       `json:"number,omitempty"`
	Neighborhood    string       `json:"neighborhood,omitempty"`
	City            string       `json:"city,omitempty"`
	State           string       `json:"state,omitempty"`
	DeliveryDate    string       `json:"deliveryDate,omitempty"`
	ExcursionName   string       `json:"excursionName,omitempty"`
	SeatNumber      string       `json:"seatNumber,omitempty"`
	Sector          string       `json:"sector,omitempty"`
	TransporterName string       `json:"transporterName,omitempty"`
}

// OrderProduct is one line of an order: the backend returns the full product
// detail, order submissions only need id and quantity (extra fields are
// ignored server-side).
type OrderProduct struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Reference string `json:"reference,omitempty"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

type Order struct {
	ID              int64           `json:"id,omitempty"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	Observations    string          `json:"observations,omitempty"`
	Value           decimal.Decimal `json:"value"`
	Status          OrderStatus     `json:"status,omitempty"`
	CreatedAt       DateTime        `json:"createdAt,omitzero"`
	Products        []OrderProduct  `json:"products"`
}

// Month returns the yyyy-MM bucket the order was created in, or "" when the
// creation timestamp is absent.
func (o Order) Month() string {
	if o.CreatedAt.IsZero() {
		return ""
	}
	return o.CreatedAt.Format("2006-01")
}

// DateTime wraps time.Time to accept the backend's zone-less timestamps
// ("2024-01-05T10:00:00") alongside RFC 3339.
type DateTime struct {
	time.Time
}

const localDateTime = "2006-01-02T15:04:05"

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, localDateTime, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}
