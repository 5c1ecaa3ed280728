package panel

import (
	"context"
	"sync"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

type mockOrdersClient struct {
	listFunc         func(ctx context.Context, q backend.OrderQuery) (*domain.Page[domain.Order], error)
	createFunc       func(ctx context.Context, o domain.Order) (*domain.Order, error)
	updateFunc       func(ctx context.Context, o domain.Order) (*domain.Order, error)
	updateStatusFunc func(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	deleteFunc       func(ctx context.Context, id int64) error
}

func (m *mockOrdersClient) ListOrders(ctx context.Context, q backend.OrderQuery) (*domain.Page[domain.Order], error) {
	return m.listFunc(ctx, q)
}

func (m *mockOrdersClient) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return m.createFunc(ctx, o)
}

func (m *mockOrdersClient) UpdateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return m.updateFunc(ctx, o)
}

func (m *mockOrdersClient) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockOrdersClient) DeleteOrder(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

type mockProductsClient struct {
	listFunc   func(ctx context.Context, q backend.ProductQuery) (*domain.Page[domain.Product], error)
	createFunc func(ctx context.Context, p domain.Product) (*domain.Product, error)
	updateFunc func(ctx context.Context, p domain.Product) (*domain.Product, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockProductsClient) ListProducts(ctx context.Context, q backend.ProductQuery) (*domain.Page[domain.Product], error) {
	return m.listFunc(ctx, q)
}

func (m *mockProductsClient) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return m.createFunc(ctx, p)
}

func (m *mockProductsClient) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return m.updateFunc(ctx, p)
}

func (m *mockProductsClient) DeleteProduct(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

// noticeRecorder collects notices emitted by a controller under test.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) notifier() Notifier {
	return func(n Notice) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.notices = append(r.notices, n)
	}
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
