package panel

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

// ErrNoPendingDelete marks a delete confirmation arriving with nothing staged.
var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// StockList drives the paginated, reference-searchable product catalog view.
// Deleting a product is a two-step operation: RequestDelete stages the id and
// ConfirmDelete performs the call, so nothing reaches the backend before the
// user confirmed.
type StockList struct {
	client   ProductsClient
	pageSize int
	notifier Notifier

	mu            sync.Mutex
	search        string
	page          int
	totalPages    int
	products      []domain.Product
	pendingDelete int64
	fetchSeq      uint64
}

func NewStockList(client ProductsClient, pageSize int, notifier Notifier) *StockList {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &StockList{
		client:   client,
		pageSize: pageSize,
		notifier: notifier,
	}
}

func (l *StockList) SearchTerm() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.search
}

func (l *StockList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *StockList) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

func (l *StockList) Products() []domain.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Product(nil), l.products...)
}

func (l *StockList) PendingDelete() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete
}

// Search filters by reference code and resets the view to the first page. An
// empty term lists the whole catalog.
func (l *StockList) Search(ctx context.Context, term string) error {
	l.mu.Lock()
	l.search = term
	l.page = 0
	l.mu.Unlock()
	return l.fetch(ctx)
}

func (l *StockList) ChangePage(ctx context.Context, n int) error {
	l.mu.Lock()
	if n < 0 {
		n = 0
	}
	l.page = n
	l.mu.Unlock()
	return l.fetch(ctx)
}

func (l *StockList) Refresh(ctx context.Context) error {
	return l.fetch(ctx)
}

func (l *StockList) Create(ctx context.Context, p domain.Product) error {
	if _, err := l.client.CreateProduct(ctx, p); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro", Message: "Não foi possível adicionar o produto."})
		return err
	}
	l.notifier.notify(Notice{Kind: NoticeSuccess, Title: "Sucesso", Message: "Produto adicionado com sucesso."})
	return l.fetch(ctx)
}

func (l *StockList) Update(ctx context.Context, p domain.Product) error {
	if _, err := l.client.UpdateProduct(ctx, p); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro", Message: "Não foi possível atualizar o produto."})
		return err
	}
	l.notifier.notify(Notice{Kind: NoticeSuccess, Title: "Sucesso", Message: "Produto atualizado com sucesso."})
	return l.fetch(ctx)
}

// RequestDelete stages a product for deletion. Nothing is sent to the backend
// until ConfirmDelete.
func (l *StockList) RequestDelete(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = id
}

// CancelDelete drops the staged deletion.
func (l *StockList) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = 0
}

// ConfirmDelete deletes the staged product and re-fetches.
func (l *StockList) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	id := l.pendingDelete
	l.pendingDelete = 0
	l.mu.Unlock()
	if id == 0 {
		return ErrNoPendingDelete
	}

	if err := l.client.DeleteProduct(ctx, id); err != nil {
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro", Message: "Não foi possível excluir o produto."})
		return err
	}
	l.notifier.notify(Notice{Kind: NoticeSuccess, Title: "Sucesso", Message: "Produto excluído com sucesso."})
	return l.fetch(ctx)
}

func (l *StockList) fetch(ctx context.Context) error {
	l.mu.Lock()
	l.fetchSeq++
	seq := l.fetchSeq
	q := backend.ProductQuery{
		Page:      l.page,
		Size:      l.pageSize,
		Reference: l.search,
	}
	l.mu.Unlock()

	page, err := l.client.ListProducts(ctx, q)
	if err != nil {
		log.Printf("fetch products failed: %v", err)
		l.notifier.notify(Notice{Kind: NoticeError, Title: "Erro", Message: "Não foi possível carregar os produtos."})
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.fetchSeq {
		return nil
	}
	l.products = page.Content
	l.totalPages = page.TotalPages
	return nil
}
