package reconciliation

import (
	"github.com/shopspring/decimal"
)

// Payment is one recorded payment towards a route's fee or passthrough amount.
type Payment struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"valor"`
	PaymentMethodID string          `json:"formaPagamentoId"`
}

// RouteRecord holds the payments recorded for a single route.
type RouteRecord struct {
	FeePayments         []Payment `json:"pagamentosTaxa"`
	PassthroughPayments []Payment `json:"pagamentosRepasse"`
}

// Data maps a route id to the payments recorded for it.
type Data map[string]RouteRecord

// Due is what a route is expected to collect: its delivery fee and its passthrough value.
type Due struct {
	RouteID     string
	Fee         decimal.Decimal
	Passthrough decimal.Decimal
}

type RouteResult struct {
	FeeDebit          decimal.Decimal
	PassthroughCredit decimal.Decimal
}

// Result is the financial effect of a reconciliation on the client's invoice.
type Result struct {
	FeeDebit          decimal.Decimal
	PassthroughCredit decimal.Decimal
	Routes            map[string]RouteResult
}

// IsZero reports whether the reconciliation has no financial impact.
func (r Result) IsZero() bool {
	return r.FeeDebit.IsZero() && r.PassthroughCredit.IsZero()
}

// Route returns the classified amounts for one route, zero when it had none.
func (r Result) Route(id string) RouteResult {
	if rr, ok := r.Routes[id]; ok {
		return rr
	}

	return RouteResult{FeeDebit: decimal.Zero, PassthroughCredit: decimal.Zero}
}

func sum(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	return total
}
