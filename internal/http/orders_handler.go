package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// OrdersHandler exposes the order list and its create/edit dialog. The list
// itself lives in panel.OrderList; the dialog pairs a panel.OrderForm with the
// panel.ProductSelector embedded in it.
type OrdersHandler struct {
	panels *Panels
}

func NewOrdersHandler(panels *Panels) *OrdersHandler {
	return &OrdersHandler{panels: panels}
}

func (h *OrdersHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Patch("/{id}/status", h.AdvanceStatus)
	r.Delete("/{id}", h.Remove)

	r.Route("/dialog", func(r chi.Router) {
		r.Post("/", h.OpenDialog)
		r.Get("/", h.DialogState)
		r.Delete("/", h.CloseDialog)
		r.Get("/products", h.DialogProducts)
		r.Post("/select", h.DialogSelect)
		r.Post("/quantity", h.DialogQuantity)
		r.Post("/confirm", h.DialogConfirm)
		r.Delete("/items/{index}", h.DialogRemoveItem)
		r.Post("/submit", h.DialogSubmit)
	})
}

type OrderListState struct {
	Orders     []domain.Order `json:"orders"`
	Tab        panel.Tab      `json:"tab"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	HasPrev    bool           `json:"hasPrev"`
	HasNext    bool           `json:"hasNext"`
	DialogOpen string         `json:"dialogOpen,omitempty"`
	CanCreate  bool           `json:"canCreate"`
	Notices    []panel.Notice `json:"notices,omitempty"`
}

func (h *OrdersHandler) sessionPanel(r *http.Request) (*SessionPanel, *session.Session) {
	id, s, _ := session.FromContext(r.Context())
	return h.panels.For(id), s
}

func (h *OrdersHandler) listState(sp *SessionPanel, s *session.Session) OrderListState {
	l := sp.Orders()
	state := OrderListState{
		Orders:     l.Orders(),
		Tab:        l.Tab(),
		Page:       l.Page(),
		TotalPages: l.TotalPages(),
		HasPrev:    l.HasPrev(),
		HasNext:    l.HasNext(),
		CanCreate:  s.IsAdmin(),
		Notices:    sp.TakeNotices(),
	}
	if d := sp.openedDialog(); d != nil {
		state.DialogOpen = d.mode
	}
	return state
}

// List serves the current page under the requested tab/page. A tab change
// resets the page to 0; fetch failures keep the previous page visible.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	sp, s := h.sessionPanel(r)
	l := sp.Orders()

	q := r.URL.Query()
	switch {
	case q.Has("tab") && panel.Tab(strings.ToUpper(q.Get("tab"))).Valid() &&
		panel.Tab(strings.ToUpper(q.Get("tab"))) != l.Tab():
		_ = l.ChangeTab(r.Context(), panel.Tab(strings.ToUpper(q.Get("tab"))))
	case q.Has("page"):
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 0 {
			respondError(w, http.StatusBadRequest, "invalid_page", "page must be a non-negative integer")
			return
		}
		_ = l.ChangePage(r.Context(), page)
	default:
		_ = l.Refresh(r.Context())
	}

	respondJSON(w, http.StatusOK, h.listState(sp, s))
}

func (h *OrdersHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	sp, s := h.sessionPanel(r)
	id, err := orderID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "id must be a positive integer")
		return
	}
	if err := sp.Orders().AdvanceStatus(r.Context(), id); err != nil {
		respondOperationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.listState(sp, s))
}

func (h *OrdersHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sp, s := h.sessionPanel(r)
	id, err := orderID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "id must be a positive integer")
		return
	}
	if err := sp.Orders().Remove(r.Context(), id); err != nil {
		// The notice carries the localized message; still flag the failure.
		state := h.listState(sp, s)
		respondJSON(w, operationStatus(err), state)
		return
	}
	respondJSON(w, http.StatusOK, h.listState(sp, s))
}

type openDialogRequest struct {
	Mode  string        `json:"mode"`
	Order *domain.Order `json:"order,omitempty"`
}

// OpenDialog starts a create, in-store or edit dialog. The full create form
// is offered to the ADMIN role only; the in-store sale to every role.
func (h *OrdersHandler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	sp, s := h.sessionPanel(r)

	var req openDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orders := sp.Orders()
	var d *orderDialog
	switch req.Mode {
	case "create":
		if !s.IsAdmin() {
			respondError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		d = &orderDialog{mode: "create", form: panel.NewOrderForm(nil, func(ctx context.Context, o domain.Order) error {
			return orders.Create(ctx, o)
		})}
	case "inStore":
		d = &orderDialog{mode: "inStore", form: panel.NewInStoreOrderForm(func(ctx context.Context, o domain.Order) error {
			return orders.CreateInStore(ctx, o)
		})}
	case "edit":
		if req.Order == nil {
			respondError(w, http.StatusBadRequest, "missing_order", "edit mode needs the order being edited")
			return
		}
		d = &orderDialog{mode: "edit", form: panel.NewOrderForm(req.Order, func(ctx context.Context, o domain.Order) error {
			return orders.Update(ctx, o)
		})}
	default:
		respondError(w, http.StatusBadRequest, "invalid_mode", "mode must be create, inStore or edit")
		return
	}

	d.selector = panel.NewProductSelector(h.panels.client, h.panels.pageSize, d.form.AddItem)
	sp.openDialog(d)
	h.respondDialog(w, d)
}

func (h *OrdersHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	sp, s := h.sessionPanel(r)
	sp.closeDialog()
	respondJSON(w, http.StatusOK, h.listState(sp, s))
}

type SelectorState struct {
	Products   []domain.Product `json:"products"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	SelectedID int64            `json:"selectedId,omitempty"`
	Quantity   int              `json:"quantity"`
	Loading    bool             `json:"loading"`
}

type DialogState struct {
	Mode     string           `json:"mode"`
	Items    []panel.LineItem `json:"items"`
	Selector SelectorState    `json:"selector"`
}

func (h *OrdersHandler) respondDialog(w http.ResponseWriter, d *orderDialog) {
	state := DialogState{
		Mode:  d.mode,
		Items: d.form.Items(),
		Selector: SelectorState{
			Products:   d.selector.Products(),
			Page:       d.selector.Page(),
			TotalPages: d.selector.TotalPages(),
			Quantity:   d.selector.Quantity(),
			Loading:    d.selector.Loading(),
		},
	}
	if p := d.selector.Selected(); p != nil {
		state.Selector.SelectedID = p.ID
	}
	respondJSON(w, http.StatusOK, state)
}

func (h *OrdersHandler) dialog(w http.ResponseWriter, r *http.Request) (*SessionPanel, *orderDialog) {
	sp, _ := h.sessionPanel(r)
	d := sp.openedDialog()
	if d == nil {
		respondError(w, http.StatusConflict, "no_dialog", "no order dialog is open")
		return sp, nil
	}
	return sp, d
}

func (h *OrdersHandler) DialogState(w http.ResponseWriter, r *http.Request) {
	if _, d := h.dialog(w, r); d != nil {
		h.respondDialog(w, d)
	}
}

// DialogProducts drives the embedded product selector: a changed reference
// term resets to the first page, otherwise the requested page is fetched.
func (h *OrdersHandler) DialogProducts(w http.ResponseWriter, r *http.Request) {
	_, d := h.dialog(w, r)
	if d == nil {
		return
	}

	q := r.URL.Query()
	switch {
	case q.Has("reference"):
		_ = d.selector.Search(r.Context(), q.Get("reference"))
	case q.Has("page"):
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 0 {
			respondError(w, http.StatusBadRequest, "invalid_page", "page must be a non-negative integer")
			return
		}
		_ = d.selector.ChangePage(r.Context(), page)
	default:
		_ = d.selector.Search(r.Context(), "")
	}
	h.respondDialog(w, d)
}

func (h *OrdersHandler) DialogSelect(w http.ResponseWriter, r *http.Request) {
	_, d := h.dialog(w, r)
	if d == nil {
		return
	}
	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := d.selector.Select(req.ProductID); err != nil {
		respondError(w, http.StatusBadRequest, "unknown_product", err.Error())
		return
	}
	h.respondDialog(w, d)
}

func (h *OrdersHandler) DialogQuantity(w http.ResponseWriter, r *http.Request) {
	_, d := h.dialog(w, r)
	if d == nil {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	d.selector.SetQuantity(req.Quantity)
	h.respondDialog(w, d)
}

func (h *OrdersHandler) DialogConfirm(w http.ResponseWriter, r *http.Request) {
	_, d := h.dialog(w, r)
	if d == nil {
		return
	}
	if err := d.selector.Confirm(); err != nil {
		respondError(w, http.StatusBadRequest, "cannot_confirm", err.Error())
		return
	}
	h.respondDialog(w, d)
}

func (h *OrdersHandler) DialogRemoveItem(w http.ResponseWriter, r *http.Request) {
	_, d := h.dialog(w, r)
	if d == nil {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}
	if err := d.form.RemoveItem(index); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_index", err.Error())
		return
	}
	h.respondDialog(w, d)
}

type orderFieldsDTO struct {
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	ShippingType    domain.ShippingType `json:"shippingType"`
	Street          string              `json:"street"`
	Number          string              `json:"number"`
	Neighborhood    string              `json:"neighborhood"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	DeliveryDate    string              `json:"deliveryDate"`
	ExcursionName   string              `json:"excursionName"`
	SeatNumber      string              `json:"seatNumber"`
	Sector          string              `json:"sector"`
	TransporterName string              `json:"transporterName"`
	Observations    string              `json:"observations"`
}

func applyFields(f *panel.OrderForm, dto orderFieldsDTO) {
	f.CustomerName = dto.CustomerName
	f.CustomerEmail = dto.CustomerEmail
	f.CustomerPhone = dto.CustomerPhone
	f.ShippingType = dto.ShippingType
	f.Street = dto.Street
	f.Number = dto.Number
	f.Neighborhood = dto.Neighborhood
	f.City = dto.City
	f.State = dto.State
	f.DeliveryDate = dto.DeliveryDate
	f.ExcursionName = dto.ExcursionName
	f.SeatNumber = dto.SeatNumber
	f.Sector = dto.Sector
	f.TransporterName = dto.TransporterName
	f.Observations = dto.Observations
}

// DialogSubmit applies the posted field values to the open form and submits
// it. Validation failures come back as per-field messages and nothing reaches
// the backend; on success the dialog closes and the list has re-fetched.
func (h *OrdersHandler) DialogSubmit(w http.ResponseWriter, r *http.Request) {
	sp, d := h.dialog(w, r)
	if d == nil {
		return
	}
	var dto orderFieldsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	applyFields(d.form, dto)

	if err := d.form.Submit(r.Context()); err != nil {
		respondOperationError(w, err)
		return
	}

	sp.closeDialog()
	_, s, _ := session.FromContext(r.Context())
	respondJSON(w, http.StatusOK, h.listState(sp, s))
}

func orderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// operationStatus picks the response status for a failed mutation whose
// outcome is still reported with full list state (notices included).
func operationStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
