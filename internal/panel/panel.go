// Package panel holds the admin panel's client-side state components: the
// paginated list controllers for orders and stock, the order forms, the
// product selector embedded in them, and the dashboard aggregation. Each
// component owns its local state only; components observe each other's
// mutations solely through re-fetching after a mutation completes.
package panel

import (
	"context"
	"log"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

// OrdersClient is the slice of the backend surface the order components use.
type OrdersClient interface {
	ListOrders(ctx context.Context, q backend.OrderQuery) (*domain.Page[domain.Order], error)
	CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// ProductsClient is the slice of the backend surface the stock components use.
type ProductsClient interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) (*domain.Page[domain.Product], error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient user-facing message, the equivalent of a toast.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message,omitempty"`
}

// Notifier receives notices from a controller. A nil Notifier logs them.
type Notifier func(Notice)

func (n Notifier) notify(notice Notice) {
	if n == nil {
		log.Printf("%s: %s %s", notice.Kind, notice.Title, notice.Message)
		return
	}
	n(notice)
}
