package http

import (
	"sync"

	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
)

// Clients bundles the backend surface the panel components consume. Satisfied
// by *backend.Client; split so handler tests can mock either half.
type Clients interface {
	panel.OrdersClient
	panel.ProductsClient
}

// Panels owns one set of panel components per session, created lazily and
// dropped on logout or session expiry. The components themselves hold the
// list/dialog state; this registry only routes a session to its instances.
type Panels struct {
	client   Clients
	pageSize int

	mu       sync.Mutex
	sessions map[string]*SessionPanel
}

func NewPanels(client Clients, pageSize int) *Panels {
	return &Panels{
		client:   client,
		pageSize: pageSize,
		sessions: make(map[string]*SessionPanel),
	}
}

// For returns the session's panel set, creating it on first use.
func (p *Panels) For(sessionID string) *SessionPanel {
	p.mu.Lock()
	defer p.mu.Unlock()
	sp, ok := p.sessions[sessionID]
	if !ok {
		sp = newSessionPanel(p.client, p.pageSize)
		p.sessions[sessionID] = sp
	}
	return sp
}

// Drop discards a session's panel state.
func (p *Panels) Drop(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, sessionID)
}

// orderDialog is the open create/edit dialog: the form plus the product
// selector embedded in it. Confirming the selector appends to the form.
type orderDialog struct {
	mode     string // "create", "inStore" or "edit"
	form     *panel.OrderForm
	selector *panel.ProductSelector
}

// SessionPanel is one user's panel state: the order list, the stock list and
// the dialog currently open over the order list. Notices raised by any
// component accumulate here until the next response drains them.
type SessionPanel struct {
	mu      sync.Mutex
	orders  *panel.OrderList
	stock   *panel.StockList
	dialog  *orderDialog
	notices []panel.Notice
}

func newSessionPanel(client Clients, pageSize int) *SessionPanel {
	sp := &SessionPanel{}
	sp.orders = panel.NewOrderList(client, pageSize, sp.pushNotice)
	sp.stock = panel.NewStockList(client, pageSize, sp.pushNotice)
	return sp
}

func (sp *SessionPanel) pushNotice(n panel.Notice) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.notices = append(sp.notices, n)
}

// TakeNotices drains the accumulated transient notices.
func (sp *SessionPanel) TakeNotices() []panel.Notice {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	notices := sp.notices
	sp.notices = nil
	return notices
}

func (sp *SessionPanel) Orders() *panel.OrderList { return sp.orders }

func (sp *SessionPanel) Stock() *panel.StockList { return sp.stock }

func (sp *SessionPanel) openDialog(d *orderDialog) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.dialog = d
}

func (sp *SessionPanel) closeDialog() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.dialog = nil
}

func (sp *SessionPanel) openedDialog() *orderDialog {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.dialog
}
