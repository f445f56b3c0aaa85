package reconciliation

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/levaetras/internal/money"
)

// PaymentInput is a payment as typed by an operator, amount still in text form.
type PaymentInput struct {
	ID              string `json:"id"`
	Amount          string `json:"valor"`
	PaymentMethodID string `json:"formaPagamentoId"`
}

type RouteInput struct {
	RouteID             string         `json:"rotaId"`
	FeePayments         []PaymentInput `json:"pagamentosTaxa"`
	PassthroughPayments []PaymentInput `json:"pagamentosRepasse"`
}

// FromInput parses operator-entered amounts and drops payments that are not positive.
func FromInput(routes []RouteInput) Data {
	data := make(Data, len(routes))

	for _, r := range routes {
		data[r.RouteID] = RouteRecord{
			FeePayments:         parsePayments(r.FeePayments),
			PassthroughPayments: parsePayments(r.PassthroughPayments),
		}
	}

	return data
}

func parsePayments(in []PaymentInput) []Payment {
	out := make([]Payment, 0, len(in))

	for _, p := range in {
		amount := money.Parse(p.Amount)
		if !amount.IsPositive() {
			continue
		}

		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}

		out = append(out, Payment{ID: id, Amount: amount, PaymentMethodID: p.PaymentMethodID})
	}

	return out
}
