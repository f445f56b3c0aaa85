package request

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/billing"
	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/courier"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	"github.com/MrJamesThe3rd/levaetras/internal/http/render"
	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

type Handler struct {
	requests *delivery.Service
	billing  *billing.Service
	clients  *client.Service
	couriers *courier.Service
}

func NewHandler(requests *delivery.Service, billingSvc *billing.Service, clients *client.Service, couriers *courier.Service) *Handler {
	return &Handler{
		requests: requests,
		billing:  billingSvc,
		clients:  clients,
		couriers: couriers,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(settings.UserAdmin, settings.UserCourier))
		r.Put("/{id}/reconciliation", h.saveReconciliation)
		r.Post("/{id}/reconciliation/check", h.checkReconciliation)
	})

	r.With(auth.RequireRole(settings.UserAdmin)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := delivery.Filter{
		ClientID:  q.Get("client_id"),
		CourierID: q.Get("courier_id"),
		Status:    delivery.Status(q.Get("status")),
	}

	if clientID, restricted := auth.ClientScope(r.Context()); restricted {
		filter.ClientID = clientID
	}

	if courierID, restricted := auth.CourierScope(r.Context()); restricted {
		filter.CourierID = courierID
	}

	requests, err := h.requests.List(r.Context(), filter)
	if err != nil {
		render.Internal(w, "failed to list requests", err)
		return
	}

	render.JSON(w, http.StatusOK, requests)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, req)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params delivery.CreateParams
	if !render.Decode(w, r, &params) {
		return
	}

	clientID, restricted := auth.ClientScope(r.Context())
	if restricted {
		params.ClientID = clientID
	}

	cl, err := h.clients.Get(r.Context(), params.ClientID)
	if err != nil {
		render.Internal(w, "failed to load client", err)
		return
	}

	if cl == nil {
		http.Error(w, "unknown client", http.StatusBadRequest)
		return
	}

	params.ClientName = cl.Name
	params.ClientAvatar = cl.Avatar

	req, err := h.requests.Create(r.Context(), params, !restricted)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, req)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.load(w, r); !ok {
		return
	}

	var params delivery.UpdateParams
	if !render.Decode(w, r, &params) {
		return
	}

	req, err := h.requests.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeError(w, err)
		return
	}

	if req == nil {
		render.NotFound(w, "request")
		return
	}

	render.JSON(w, http.StatusOK, req)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Internal(w, "failed to delete request", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status         delivery.Status             `json:"status"`
	Justification  string                      `json:"justificativa"`
	CourierID      string                      `json:"entregadorId"`
	Reconciliation []reconciliation.RouteInput `json:"conciliacao"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	var body statusRequest
	if !render.Decode(w, r, &body) {
		return
	}

	// clients may only withdraw their own requests
	if _, restricted := auth.ClientScope(r.Context()); restricted && body.Status != delivery.StatusCancelled {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	details := delivery.Details{Justification: body.Justification}

	if body.Reconciliation != nil {
		details.Reconciliation = reconciliation.FromInput(body.Reconciliation)
	}

	if courierID, restricted := auth.CourierScope(r.Context()); restricted && body.CourierID != "" && body.CourierID != courierID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if body.CourierID != "" {
		c, err := h.couriers.Get(r.Context(), body.CourierID)
		if err != nil {
			render.Internal(w, "failed to load courier", err)
			return
		}

		if c == nil {
			http.Error(w, "unknown courier", http.StatusBadRequest)
			return
		}

		details.Courier = &delivery.CourierRef{ID: c.ID, Name: c.Name, Avatar: c.Avatar}
	}

	effects, err := h.billing.UpdateRequestStatus(r.Context(), req.ID, body.Status, details)
	if err != nil {
		if effects != nil {
			render.Internal(w, "request concluded with incomplete ledger writes", err)
			return
		}

		writeError(w, err)

		return
	}

	if effects == nil {
		render.NotFound(w, "request")
		return
	}

	render.JSON(w, http.StatusOK, effects)
}

func (h *Handler) saveReconciliation(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.load(w, r); !ok {
		return
	}

	var body []reconciliation.RouteInput
	if !render.Decode(w, r, &body) {
		return
	}

	req, err := h.requests.SaveReconciliation(r.Context(), chi.URLParam(r, "id"), reconciliation.FromInput(body))
	if err != nil {
		writeError(w, err)
		return
	}

	if req == nil {
		render.NotFound(w, "request")
		return
	}

	render.JSON(w, http.StatusOK, req)
}

type checkResponse struct {
	Complete bool                   `json:"complete"`
	Issues   []reconciliation.Issue `json:"issues"`
	Messages []string               `json:"messages"`
}

func (h *Handler) checkReconciliation(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.load(w, r); !ok {
		return
	}

	var body []reconciliation.RouteInput
	if !render.Decode(w, r, &body) {
		return
	}

	issues, err := h.billing.CheckReconciliation(r.Context(), chi.URLParam(r, "id"), reconciliation.FromInput(body))
	if err != nil {
		render.Internal(w, "failed to check reconciliation", err)
		return
	}

	if issues == nil {
		render.NotFound(w, "request")
		return
	}

	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = issue.String()
	}

	render.JSON(w, http.StatusOK, checkResponse{
		Complete: len(issues) == 0,
		Issues:   issues,
		Messages: messages,
	})
}

// load fetches the request named in the path, hiding requests that belong to
// other clients or are assigned to other couriers.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*delivery.Request, bool) {
	req, err := h.requests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Internal(w, "failed to load request", err)
		return nil, false
	}

	if req == nil || !visible(r.Context(), req) {
		render.NotFound(w, "request")
		return nil, false
	}

	return req, true
}

func visible(ctx context.Context, req *delivery.Request) bool {
	if clientID, restricted := auth.ClientScope(ctx); restricted && req.ClientID != clientID {
		return false
	}

	if courierID, restricted := auth.CourierScope(ctx); restricted && req.CourierID != courierID {
		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, delivery.ErrInvalidTransition), errors.Is(err, delivery.ErrLocked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, delivery.ErrJustificationRequired),
		errors.Is(err, billing.ErrReconciliationIncomplete),
		errors.Is(err, billing.ErrUnknownClient):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, delivery.ErrUnknownNeighborhood):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		render.Internal(w, "request operation failed", err)
	}
}
