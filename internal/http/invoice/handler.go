package invoice

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/http/render"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(settings.UserAdmin))
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/fee-payment", h.feePayment)
		r.Post("/{id}/passthrough-payment", h.passthroughPayment)
		r.Post("/{id}/close", h.close)
		r.Post("/{id}/items", h.addItem)
		r.Put("/{id}/items/{itemID}", h.updateItem)
		r.Delete("/{id}/items/{itemID}", h.removeItem)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.Filter{
		ClientID: r.URL.Query().Get("client_id"),
		Status:   invoice.Status(r.URL.Query().Get("status")),
	}

	if clientID, restricted := auth.ClientScope(r.Context()); restricted {
		filter.ClientID = clientID
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Internal(w, "failed to list invoices", err)
		return
	}

	render.JSON(w, http.StatusOK, invoices)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Internal(w, "failed to load invoice", err)
		return
	}

	if clientID, restricted := auth.ClientScope(r.Context()); inv == nil || (restricted && inv.ClientID != clientID) {
		render.NotFound(w, "invoice")
		return
	}

	render.JSON(w, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Internal(w, "failed to delete invoice", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type actionRequest struct {
	Details string `json:"detalhes"`
}

func (h *Handler) feePayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.svc.RecordFeePayment)
}

func (h *Handler) passthroughPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.svc.RecordPassthroughPayment)
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.svc.Close)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, action func(context.Context, string, string) (*invoice.Invoice, error)) {
	var body actionRequest
	if r.ContentLength != 0 && !render.Decode(w, r, &body) {
		return
	}

	inv, err := action(r.Context(), chi.URLParam(r, "id"), body.Details)
	h.respond(w, inv, err)
}

type extraFeeRequest struct {
	Name   string          `json:"nome"`
	Amount decimal.Decimal `json:"valor"`
}

type itemRequest struct {
	Date        *time.Time        `json:"data,omitempty"`
	Description string            `json:"descricao"`
	CourierID   string            `json:"entregadorId"`
	CourierName string            `json:"entregadorNome"`
	Fee         decimal.Decimal   `json:"taxaEntrega"`
	ExtraFees   []extraFeeRequest `json:"taxasExtras"`
	Passthrough decimal.Decimal   `json:"valorRepasse"`
}

func (req itemRequest) toLineItem(id string) invoice.LineItem {
	item := invoice.LineItem{
		ID:          id,
		Description: req.Description,
		CourierID:   req.CourierID,
		CourierName: req.CourierName,
		Fee:         req.Fee,
		Passthrough: req.Passthrough,
	}

	if req.Date != nil {
		item.Date = *req.Date
	}

	for _, f := range req.ExtraFees {
		item.ExtraFees = append(item.ExtraFees, invoice.ExtraFee{Name: f.Name, Amount: f.Amount})
	}

	return item
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var body itemRequest
	if !render.Decode(w, r, &body) {
		return
	}

	inv, err := h.svc.AddLineItem(r.Context(), chi.URLParam(r, "id"), body.toLineItem(""))
	h.respond(w, inv, err)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var body itemRequest
	if !render.Decode(w, r, &body) {
		return
	}

	inv, err := h.svc.UpdateLineItem(r.Context(), chi.URLParam(r, "id"), body.toLineItem(chi.URLParam(r, "itemID")))
	h.respond(w, inv, err)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.RemoveLineItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	h.respond(w, inv, err)
}

func (h *Handler) respond(w http.ResponseWriter, inv *invoice.Invoice, err error) {
	switch {
	case errors.Is(err, invoice.ErrInvalidTransition), errors.Is(err, invoice.ErrSettled):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		render.Internal(w, "invoice operation failed", err)
	case inv == nil:
		render.NotFound(w, "invoice")
	default:
		render.JSON(w, http.StatusOK, inv)
	}
}
