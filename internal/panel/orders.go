package panel

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

// Tab filters the order list by status. TabTodos shows every order.
type Tab string

const (
	TabTodos    Tab = "TODOS"
	TabAberto   Tab = Tab(domain.StatusAberto)
	TabCompleto Tab = Tab(domain.StatusCompleto)
	TabLoja     Tab = Tab(domain.StatusLoja)
)

func (t Tab) Valid() bool {
	switch t {
	case TabTodos, TabAberto, TabCompleto, TabLoja:
		return true
	}
	return false
}

func (t Tab) statusFilter() domain.OrderStatus {
	if t == TabTodos {
		return ""
	}
	return domain.OrderStatus(t)
}

// ErrMissingOrderID marks an update refused locally because the order carried
// no identifier; no request reaches the backend in that case.
var ErrMissingOrderID = errors.New("cannot update an order without an id")

// OrderList drives the paginated, status-filtered order view. Every mutation
// re-fetches the current page, and only after the mutation's response has
// arrived. Fetches are stamped with a sequence number so a slow response never
// overwrites the data of a later page/tab change (latest request wins).
type OrderList struct {
	client   OrdersClient
	pageSize int
	notifier Notifier

	mu         sync.Mutex
	tab        Tab
	page       int
	totalPages int
	orders     []domain.Order
	fetchSeq   uint64
}

func NewOrderList(client OrdersClient, pageSize int, notifier Notifier) *OrderList {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &OrderList{
		client:   client,
		pageSize: pageSize,
		notifier: notifier,
		tab:      TabTodos,
	}
}

func (l *OrderList) Tab() Tab {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tab
}

func (l *OrderList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *OrderList) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

func (l *OrderList) Orders() []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Order(nil), l.orders...)
}

func (l *OrderList) HasPrev() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page > 0
}

func (l *OrderList) HasNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page < l.totalPages-1
}

// Refresh re-fetches the current page. On failure the previous page's data
// stays visible; the error is logged and returned, no retry is made.
func (l *OrderList) Refresh(ctx context.Context) error {
	return l.fetch(ctx)
}

// ChangeTab switches the status filter and resets the view to the first page.
func (l *OrderList) ChangeTab(ctx context.Context, tab Tab) error {
	l.mu.Lock()
	l.tab = tab
	l.page = 0
	l.mu.Unlock()
	return l.fetch(ctx)
}

// ChangePage moves to page n under the current filter.
func (l *OrderList) ChangePage(ctx context.Context, n int) error {
	l.mu.Lock()
	if n < 0 {
		n = 0
	}
	l.page = n
	l.mu.Unlock()
	return l.fetch(ctx)
}

// Create posts a new order and re-fetches the current page.
func (l *OrderList) Create(ctx context.Context, o domain.Order) error {
	if _, err := l.client.CreateOrder(ctx, o); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao adicionar novo pedido", Message: noticeMessage(err)})
		return err
	}
	return l.fetch(ctx)
}

// CreateInStore posts an in-store sale: whatever shipping detail the caller
// assembled is replaced by type LOJA, so the order starts in the in-store
// lifecycle.
func (l *OrderList) CreateInStore(ctx context.Context, o domain.Order) error {
	o.ShippingDetails = domain.ShippingDetails{Type: domain.ShippingLoja}
	if _, err := l.client.CreateOrder(ctx, o); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao adicionar nova venda em loja", Message: noticeMessage(err)})
		return err
	}
	return l.fetch(ctx)
}

// AdvanceStatus moves an order forward to COMPLETO. No other transition is
// exposed from the list.
func (l *OrderList) AdvanceStatus(ctx context.Context, id int64) error {
	if _, err := l.client.UpdateOrderStatus(ctx, id, domain.StatusCompleto); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao atualizar o status do pedido", Message: noticeMessage(err)})
		return err
	}
	return l.fetch(ctx)
}

// Update replaces an existing order. An order without an id is refused
// locally, before any network request is issued.
func (l *OrderList) Update(ctx context.Context, o domain.Order) error {
	if o.ID == 0 {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao editar o pedido", Message: "pedido sem identificador"})
		return ErrMissingOrderID
	}
	if _, err := l.client.UpdateOrder(ctx, o); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao editar o pedido", Message: noticeMessage(err)})
		return err
	}
	return l.fetch(ctx)
}

// Remove deletes an order and re-fetches. A backend refusal surfaces as a
// localized notice rather than the raw error.
func (l *OrderList) Remove(ctx context.Context, id int64) error {
	if err := l.client.DeleteOrder(ctx, id); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro ao deletar pedido", Message: noticeMessage(err)})
		return err
	}
	return l.fetch(ctx)
}

func (l *OrderList) fetch(ctx context.Context) error {
	l.mu.Lock()
	l.fetchSeq++
	seq := l.fetchSeq
	q := backend.OrderQuery{
		Page:   l.page,
		Size:   l.pageSize,
		Status: l.tab.statusFilter(),
	}
	l.mu.Unlock()

	page, err := l.client.ListOrders(ctx, q)
	if err != nil {
		log.Printf("fetch orders failed: %v", err)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.fetchSeq {
		// A newer fetch was issued while this one was in flight.
		return nil
	}
	l.orders = page.Content
	l.totalPages = page.TotalPages
	return nil
}

// noticeMessage localizes the backend's access-denied refusal and otherwise
// passes its message through; anything without a message gets a generic text.
func noticeMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		if apiErr.Message == "Access Denied" {
			return "Acesso negado"
		}
		return apiErr.Message
	}
	return "Não foi possível completar a operação."
}
