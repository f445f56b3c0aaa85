package invoice

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen      Status = "Aberta"
	StatusClosed    Status = "Fechada"
	StatusPaid      Status = "Paga"
	StatusFinalized Status = "Finalizada"
	StatusOverdue   Status = "Vencida"
)

type FeeStatus string

const (
	FeePending FeeStatus = "Pendente"
	FeePaid    FeeStatus = "Paga"
	FeeOverdue FeeStatus = "Vencida"
)

type PassthroughStatus string

const (
	PassthroughPending     PassthroughStatus = "Pendente"
	PassthroughTransferred PassthroughStatus = "Repassado"
)

type BillingType string

const (
	BillingMonthly BillingType = "Mensal"
	BillingWeekly  BillingType = "Semanal"
	BillingDaily   BillingType = "Diário"
	BillingManual  BillingType = "Manual"
)

type Action string

const (
	ActionCreated            Action = "criada"
	ActionFeePayment         Action = "pagamento_taxa"
	ActionPassthroughPayment Action = "pagamento_repasse"
	ActionFinalized          Action = "finalizada"
	ActionClosed             Action = "fechada"
	ActionOverdue            Action = "vencida"
	ActionItemAdded          Action = "entrega_adicionada"
	ActionItemUpdated        Action = "entrega_atualizada"
	ActionItemRemoved        Action = "entrega_removida"
)

type ExtraFee struct {
	Name   string          `json:"nome"`
	Amount decimal.Decimal `json:"valor"`
}

// LineItem is a delivery included in an invoice.
type LineItem struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"data"`
	Description string          `json:"descricao"`
	CourierID   string          `json:"entregadorId,omitempty"`
	CourierName string          `json:"entregadorNome"`
	Fee         decimal.Decimal `json:"taxaEntrega"`
	ExtraFees   []ExtraFee      `json:"taxasExtras"`
	Passthrough decimal.Decimal `json:"valorRepasse"`
}

// Total is the fee charged for the item including its extra fees.
func (l LineItem) Total() decimal.Decimal {
	total := l.Fee
	for _, f := range l.ExtraFees {
		total = total.Add(f.Amount)
	}

	return total
}

type HistoryEntry struct {
	ID      string    `json:"id"`
	Action  Action    `json:"acao"`
	At      time.Time `json:"data"`
	Details string    `json:"detalhes,omitempty"`
}

type Invoice struct {
	ID                string            `json:"id"`
	Number            string            `json:"numero"`
	ClientID          string            `json:"clienteId"`
	ClientName        string            `json:"clienteNome"`
	BillingType       BillingType       `json:"tipoFaturamento"`
	DeliveryCount     int               `json:"totalEntregas"`
	IssuedAt          time.Time         `json:"dataEmissao"`
	DueAt             time.Time         `json:"dataVencimento"`
	TotalFee          decimal.Decimal   `json:"valorTaxas"`
	FeeStatus         FeeStatus         `json:"statusTaxas"`
	TotalPassthrough  decimal.Decimal   `json:"valorRepasse"`
	PassthroughStatus PassthroughStatus `json:"statusRepasse"`
	Status            Status            `json:"statusGeral"`
	Notes             string            `json:"observacoes,omitempty"`
	Items             []LineItem        `json:"entregas"`
	History           []HistoryEntry    `json:"historico"`
}

// Settled reports whether both sides of the invoice have been paid.
func (inv *Invoice) Settled() bool {
	return inv.Status == StatusFinalized
}

// RecalculateTotals returns a copy of inv with its totals derived from the line items.
func RecalculateTotals(inv *Invoice) *Invoice {
	out := *inv
	out.TotalFee = decimal.Zero
	out.TotalPassthrough = decimal.Zero

	for _, item := range inv.Items {
		out.TotalFee = out.TotalFee.Add(item.Total())
		out.TotalPassthrough = out.TotalPassthrough.Add(item.Passthrough)
	}

	out.DeliveryCount = len(inv.Items)

	return &out
}

func (inv *Invoice) record(id string, action Action, at time.Time, details string) {
	inv.History = append(inv.History, HistoryEntry{ID: id, Action: action, At: at, Details: details})
	slices.SortStableFunc(inv.History, func(a, b HistoryEntry) int {
		return a.At.Compare(b.At)
	})
}
