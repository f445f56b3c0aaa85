package delivery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
)

type Status string

const (
	StatusPending    Status = "pendente"
	StatusAccepted   Status = "aceita"
	StatusInProgress Status = "em_andamento"
	StatusConcluded  Status = "concluida"
	StatusCancelled  Status = "cancelada"
	StatusRejected   Status = "rejeitada"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusAccepted, StatusCancelled, StatusRejected},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusConcluded},
}

// CanTransition reports whether a request in status from may move to status to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

func (s Status) Terminal() bool {
	return s == StatusConcluded || s == StatusCancelled || s == StatusRejected
}

// NeedsJustification reports whether moving to s requires a written reason.
func (s Status) NeedsJustification() bool {
	return s == StatusCancelled || s == StatusRejected
}

// RouteStatus tracks a single route, independently of its request's Status.
type RouteStatus string

const RoutePending RouteStatus = "pendente"

// Route is one leg of a delivery request.
type Route struct {
	ID                  string          `json:"id"`
	NeighborhoodID      string          `json:"bairroDestinoId"`
	Responsible         string          `json:"responsavel"`
	Phone               string          `json:"telefone"`
	Notes               string          `json:"observacoes"`
	Fee                 decimal.Decimal `json:"taxaEntrega"`
	Extra               decimal.Decimal `json:"valorExtra"`
	CollectFromCustomer bool            `json:"receberDoCliente"`
	PaymentMethodIDs    []string        `json:"meiosPagamentoAceitos,omitempty"`
	Status              RouteStatus     `json:"status"`
}

// Request is a delivery request ("solicitação") grouping the routes of one client.
type Request struct {
	ID                   string              `json:"id"`
	Code                 string              `json:"codigo"`
	ClientID             string              `json:"clienteId"`
	ClientName           string              `json:"clienteNome"`
	ClientAvatar         string              `json:"clienteAvatar"`
	CourierID            string              `json:"entregadorId,omitempty"`
	CourierName          string              `json:"entregadorNome,omitempty"`
	CourierAvatar        string              `json:"entregadorAvatar,omitempty"`
	Status               Status              `json:"status"`
	CreatedAt            time.Time           `json:"dataSolicitacao"`
	OperationType        string              `json:"tipoOperacao"`
	OperationDescription string              `json:"operationDescription"`
	PickupPoint          string              `json:"pontoColeta"`
	Routes               []Route             `json:"rotas"`
	TotalFee             decimal.Decimal     `json:"valorTotalTaxas"`
	TotalPassthrough     decimal.Decimal     `json:"valorTotalRepasse"`
	Justification        string              `json:"justificativa,omitempty"`
	Reconciliation       reconciliation.Data `json:"conciliacao,omitempty"`
}

// Dues lists what each route is expected to collect.
func (r *Request) Dues() []reconciliation.Due {
	dues := make([]reconciliation.Due, 0, len(r.Routes))
	for _, rt := range r.Routes {
		dues = append(dues, reconciliation.Due{RouteID: rt.ID, Fee: rt.Fee, Passthrough: rt.Extra})
	}

	return dues
}

// Locked reports whether the routes can no longer be edited.
func (r *Request) Locked() bool {
	return r.Status == StatusConcluded || len(r.Reconciliation) > 0
}

// Route returns the route with the given id, or nil.
func (r *Request) Route(id string) *Route {
	for i := range r.Routes {
		if r.Routes[i].ID == id {
			return &r.Routes[i]
		}
	}

	return nil
}

func (r *Request) recalculate() {
	r.TotalFee = decimal.Zero
	r.TotalPassthrough = decimal.Zero

	for _, rt := range r.Routes {
		r.TotalFee = r.TotalFee.Add(rt.Fee)
		r.TotalPassthrough = r.TotalPassthrough.Add(rt.Extra)
	}
}
