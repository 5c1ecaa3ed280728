package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// ProductsHandler exposes the stock list: paginated, searchable product CRUD.
// Deletion is two-step; the backend call happens only on explicit confirm.
type ProductsHandler struct {
	panels *Panels
}

func NewProductsHandler(panels *Panels) *ProductsHandler {
	return &ProductsHandler{panels: panels}
}

func (h *ProductsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.RequestDelete)
	r.Post("/{id}/confirm-delete", h.ConfirmDelete)
	r.Post("/cancel-delete", h.CancelDelete)
}

type StockListState struct {
	Products      []domain.Product `json:"products"`
	Search        string           `json:"search"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	PendingDelete int64            `json:"pendingDelete,omitempty"`
	Notices       []panel.Notice   `json:"notices,omitempty"`
}

func (h *ProductsHandler) sessionPanel(r *http.Request) *SessionPanel {
	id, _, _ := session.FromContext(r.Context())
	return h.panels.For(id)
}

func (h *ProductsHandler) stockState(sp *SessionPanel) StockListState {
	l := sp.Stock()
	return StockListState{
		Products:      l.Products(),
		Search:        l.SearchTerm(),
		Page:          l.Page(),
		TotalPages:    l.TotalPages(),
		PendingDelete: l.PendingDelete(),
		Notices:       sp.TakeNotices(),
	}
}

// List serves the current catalog page. A changed reference term resets to
// the first page.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)
	l := sp.Stock()

	q := r.URL.Query()
	switch {
	case q.Has("reference") && q.Get("reference") != l.SearchTerm():
		_ = l.Search(r.Context(), q.Get("reference"))
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

	respondJSON(w, http.StatusOK, h.stockState(sp))
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := sp.Stock().Create(r.Context(), p); err != nil {
		respondJSON(w, operationStatus(err), h.stockState(sp))
		return
	}
	respondJSON(w, http.StatusCreated, h.stockState(sp))
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	p.ID = id
	if err := sp.Stock().Update(r.Context(), p); err != nil {
		respondJSON(w, operationStatus(err), h.stockState(sp))
		return
	}
	respondJSON(w, http.StatusOK, h.stockState(sp))
}

// RequestDelete stages a deletion; nothing reaches the backend yet.
func (h *ProductsHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}
	sp.Stock().RequestDelete(id)
	respondJSON(w, http.StatusOK, h.stockState(sp))
}

// ConfirmDelete performs the staged deletion.
func (h *ProductsHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}
	if id != sp.Stock().PendingDelete() {
		respondError(w, http.StatusConflict, "no_pending_delete", "this product is not staged for deletion")
		return
	}
	if err := sp.Stock().ConfirmDelete(r.Context()); err != nil {
		respondJSON(w, operationStatus(err), h.stockState(sp))
		return
	}
	respondJSON(w, http.StatusOK, h.stockState(sp))
}

func (h *ProductsHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	sp := h.sessionPanel(r)
	sp.Stock().CancelDelete()
	respondJSON(w, http.StatusOK, h.stockState(sp))
}
