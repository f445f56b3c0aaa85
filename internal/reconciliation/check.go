package reconciliation

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/money"
)

type IssueKind string

const (
	IssueMissingRoute        IssueKind = "missing_route"
	IssueFeeMismatch         IssueKind = "fee_mismatch"
	IssuePassthroughMismatch IssueKind = "passthrough_mismatch"
	IssueMissingMethod       IssueKind = "missing_payment_method"
	IssueUnknownRoute        IssueKind = "unknown_route"
)

// Issue describes why a route's reconciliation is not complete.
type Issue struct {
	RouteID  string          `json:"routeId"`
	Kind     IssueKind       `json:"kind"`
	Expected decimal.Decimal `json:"expected"`
	Got      decimal.Decimal `json:"got"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingRoute:
		return fmt.Sprintf("rota %s sem conciliação", i.RouteID)
	case IssueMissingMethod:
		return fmt.Sprintf("rota %s: pagamento sem forma de pagamento", i.RouteID)
	case IssueUnknownRoute:
		return fmt.Sprintf("rota %s não pertence à solicitação", i.RouteID)
	default:
		return fmt.Sprintf("rota %s: esperado %s, conciliado %s", i.RouteID, money.Format(i.Expected), money.Format(i.Got))
	}
}

// Check lists every reason the recorded payments do not settle the dues.
// Sums must match exactly within money.Epsilon, in both directions.
// Entries for routes without a due are rejected.
func Check(dues []Due, data Data) []Issue {
	var issues []Issue

	known := make(map[string]bool, len(dues))

	for _, due := range dues {
		known[due.RouteID] = true

		rec, ok := data[due.RouteID]
		if !ok {
			issues = append(issues, Issue{RouteID: due.RouteID, Kind: IssueMissingRoute, Expected: due.Fee.Add(due.Passthrough), Got: decimal.Zero})
			continue
		}

		if got := sum(rec.FeePayments); !money.Equal(got, due.Fee) {
			issues = append(issues, Issue{RouteID: due.RouteID, Kind: IssueFeeMismatch, Expected: due.Fee, Got: got})
		}

		if got := sum(rec.PassthroughPayments); !money.Equal(got, due.Passthrough) {
			issues = append(issues, Issue{RouteID: due.RouteID, Kind: IssuePassthroughMismatch, Expected: due.Passthrough, Got: got})
		}

		if hasUnassigned(rec.FeePayments) || hasUnassigned(rec.PassthroughPayments) {
			issues = append(issues, Issue{RouteID: due.RouteID, Kind: IssueMissingMethod, Expected: decimal.Zero, Got: decimal.Zero})
		}
	}

	for _, routeID := range slices.Sorted(maps.Keys(data)) {
		if known[routeID] {
			continue
		}

		rec := data[routeID]
		got := sum(rec.FeePayments).Add(sum(rec.PassthroughPayments))
		issues = append(issues, Issue{RouteID: routeID, Kind: IssueUnknownRoute, Expected: decimal.Zero, Got: got})
	}

	return issues
}

// IsComplete reports whether every due is settled by the recorded payments.
func IsComplete(dues []Due, data Data) bool {
	return len(Check(dues, data)) == 0
}

func hasUnassigned(payments []Payment) bool {
	for _, p := range payments {
		if p.Amount.IsPositive() && p.PaymentMethodID == "" {
			return true
		}
	}

	return false
}
