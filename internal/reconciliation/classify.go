package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

// Classify sums fee payments made through fee-debit methods and passthrough
// payments made through passthrough-credit methods. Payments whose method is
// unknown count as no action.
func Classify(data Data, methods []settings.ReconciliationMethod) Result {
	actions := make(map[string]settings.BillingAction, len(methods))
	for _, m := range methods {
		actions[m.ID] = m.Action
	}

	res := Result{
		FeeDebit:          decimal.Zero,
		PassthroughCredit: decimal.Zero,
		Routes:            make(map[string]RouteResult, len(data)),
	}

	for routeID, rec := range data {
		rr := RouteResult{FeeDebit: decimal.Zero, PassthroughCredit: decimal.Zero}

		for _, p := range rec.FeePayments {
			if actions[p.PaymentMethodID] == settings.ActionGenerateFeeDebit {
				rr.FeeDebit = rr.FeeDebit.Add(p.Amount)
			}
		}

		for _, p := range rec.PassthroughPayments {
			if actions[p.PaymentMethodID] == settings.ActionGeneratePassthroughCredit {
				rr.PassthroughCredit = rr.PassthroughCredit.Add(p.Amount)
			}
		}

		if rr.FeeDebit.IsZero() && rr.PassthroughCredit.IsZero() {
			continue
		}

		res.Routes[routeID] = rr
		res.FeeDebit = res.FeeDebit.Add(rr.FeeDebit)
		res.PassthroughCredit = res.PassthroughCredit.Add(rr.PassthroughCredit)
	}

	return res
}
