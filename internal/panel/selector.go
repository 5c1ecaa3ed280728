package panel

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

var (
	ErrNoSelection    = errors.New("no product selected")
	ErrUnknownProduct = errors.New("product is not on the current page")
	ErrNothingInStock = errors.New("selected product has no stock on hand")
)

// ProductSelector is the paginated, searchable picker embedded in the order
// forms. Confirm hands the chosen product and quantity to the callback given
// at construction; the selector itself never writes to the backend.
type ProductSelector struct {
	client    ProductsClient
	pageSize  int
	onConfirm func(domain.Product, int)

	mu         sync.Mutex
	search     string
	page       int
	totalPages int
	products   []domain.Product
	selected   *domain.Product
	quantity   int
	loading    bool
	fetchSeq   uint64
}

func NewProductSelector(client ProductsClient, pageSize int, onConfirm func(domain.Product, int)) *ProductSelector {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ProductSelector{
		client:    client,
		pageSize:  pageSize,
		onConfirm: onConfirm,
		quantity:  1,
	}
}

func (s *ProductSelector) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *ProductSelector) Selected() *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *ProductSelector) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

func (s *ProductSelector) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *ProductSelector) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

func (s *ProductSelector) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Search filters by reference code (empty term lists everything) and resets
// the view to the first page.
func (s *ProductSelector) Search(ctx context.Context, term string) error {
	s.mu.Lock()
	s.search = term
	s.page = 0
	s.mu.Unlock()
	return s.fetch(ctx)
}

// ChangePage re-fetches page n with the current term.
func (s *ProductSelector) ChangePage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 0 {
		n = 0
	}
	s.page = n
	s.mu.Unlock()
	return s.fetch(ctx)
}

// Select highlights a product from the current page and resets the quantity
// to 1.
func (s *ProductSelector) Select(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			p := s.products[i]
			s.selected = &p
			s.quantity = 1
			return nil
		}
	}
	return ErrUnknownProduct
}

// SetQuantity clamps n to [1, on-hand quantity] of the highlighted product.
// Out-of-range values are clamped silently, not rejected.
func (s *ProductSelector) SetQuantity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if s.selected != nil && n > s.selected.Quantity {
		n = s.selected.Quantity
	}
	s.quantity = n
}

// CanConfirm reports whether a product is highlighted with a quantity of at
// least one.
func (s *ProductSelector) CanConfirm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected != nil && s.quantity >= 1
}

// Confirm emits the highlighted product and chosen quantity to the embedding
// form and resets the quantity to 1. It does not contact the backend.
func (s *ProductSelector) Confirm() error {
	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return ErrNoSelection
	}
	if s.quantity < 1 {
		s.mu.Unlock()
		return ErrNothingInStock
	}
	product := *s.selected
	quantity := s.quantity
	s.quantity = 1
	s.mu.Unlock()

	if s.onConfirm != nil {
		s.onConfirm(product, quantity)
	}
	return nil
}

func (s *ProductSelector) fetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	q := backend.ProductQuery{
		Page:      s.page,
		Size:      s.pageSize,
		Reference: s.search,
	}
	s.mu.Unlock()

	page, err := s.client.ListProducts(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.fetchSeq {
		s.loading = false
	}
	if err != nil {
		// Previous page's data stays visible; no retry.
		log.Printf("fetch products failed: %v", err)
		return err
	}
	if seq != s.fetchSeq {
		return nil
	}
	s.products = page.Content
	s.totalPages = page.TotalPages
	return nil
}
