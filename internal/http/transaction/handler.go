package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/http/render"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

type Handler struct {
	svc     *transaction.Service
	clients *client.Service
}

func NewHandler(svc *transaction.Service, clients *client.Service) *Handler {
	return &Handler{svc: svc, clients: clients}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/balance/{clientID}", h.balance)
	r.Get("/{id}", h.get)
	r.With(auth.RequireRole(settings.UserAdmin)).Post("/", h.create)
}

type createTransactionRequest struct {
	ClientID    string             `json:"clientId"`
	Origin      transaction.Origin `json:"origin"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"value"`
}

// create registers a manual balance movement. Only recharges are credits.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	txType, ok := typeOf(req.Origin)
	if !ok {
		http.Error(w, "invalid origin", http.StatusBadRequest)
		return
	}

	cl, err := h.clients.Get(r.Context(), req.ClientID)
	if err != nil {
		render.Internal(w, "failed to load client", err)
		return
	}

	if cl == nil {
		http.Error(w, "unknown client", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Add(r.Context(), transaction.CreateParams{
		Type:         txType,
		Origin:       req.Origin,
		Description:  req.Description,
		Amount:       req.Amount,
		ClientID:     cl.ID,
		ClientName:   cl.Name,
		ClientAvatar: cl.Avatar,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.Internal(w, "failed to create transaction", err)

		return
	}

	render.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := transaction.ListFilter{ClientID: q.Get("client_id")}

	if s := q.Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if clientID, restricted := auth.ClientScope(r.Context()); restricted {
		filter.ClientID = clientID
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Internal(w, "failed to list transactions", err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			render.NotFound(w, "transaction")
			return
		}

		render.Internal(w, "failed to load transaction", err)

		return
	}

	if clientID, restricted := auth.ClientScope(r.Context()); restricted && tx.ClientID != clientID {
		render.NotFound(w, "transaction")
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if scoped, restricted := auth.ClientScope(r.Context()); restricted && scoped != clientID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	balance, err := h.svc.Balance(r.Context(), clientID)
	if err != nil {
		render.Internal(w, "failed to compute balance", err)
		return
	}

	render.JSON(w, http.StatusOK, toBalanceResponse(clientID, balance))
}

func typeOf(origin transaction.Origin) (transaction.Type, bool) {
	switch origin {
	case transaction.OriginRechargePix, transaction.OriginRechargeCard, transaction.OriginRechargeManual:
		return transaction.TypeCredit, true
	case transaction.OriginDeliveryFee, transaction.OriginCancellationFee:
		return transaction.TypeDebit, true
	default:
		return "", false
	}
}
