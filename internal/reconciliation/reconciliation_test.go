package reconciliation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

var methods = []settings.ReconciliationMethod{
	{ID: "faturar-taxa", Name: "Faturar taxa", Action: settings.ActionGenerateFeeDebit},
	{ID: "repassar-valor", Name: "Repassar valor", Action: settings.ActionGeneratePassthroughCredit},
	{ID: "pix-levaetras", Name: "Pix Leva e Trás", Action: settings.ActionNone},
}

func scenario() ([]reconciliation.Due, reconciliation.Data) {
	dues := []reconciliation.Due{
		{RouteID: "A", Fee: dec("10.00"), Passthrough: decimal.Zero},
		{RouteID: "B", Fee: dec("15.00"), Passthrough: dec("50.00")},
	}
	data := reconciliation.Data{
		"A": {
			FeePayments: []reconciliation.Payment{{ID: "p1", Amount: dec("10.00"), PaymentMethodID: "faturar-taxa"}},
		},
		"B": {
			FeePayments:         []reconciliation.Payment{{ID: "p2", Amount: dec("15.00"), PaymentMethodID: "faturar-taxa"}},
			PassthroughPayments: []reconciliation.Payment{{ID: "p3", Amount: dec("50.00"), PaymentMethodID: "repassar-valor"}},
		},
	}

	return dues, data
}

func TestClassify(t *testing.T) {
	t.Run("two routes", func(t *testing.T) {
		_, data := scenario()

		res := reconciliation.Classify(data, methods)

		assertAmount(t, "25.00", res.FeeDebit)
		assertAmount(t, "50.00", res.PassthroughCredit)
		assert.False(t, res.IsZero())
		assertAmount(t, "10.00", res.Route("A").FeeDebit)
		assertAmount(t, "0", res.Route("A").PassthroughCredit)
		assertAmount(t, "15.00", res.Route("B").FeeDebit)
		assertAmount(t, "50.00", res.Route("B").PassthroughCredit)
	})

	t.Run("methods without billing action", func(t *testing.T) {
		data := reconciliation.Data{
			"A": {
				FeePayments:         []reconciliation.Payment{{Amount: dec("10"), PaymentMethodID: "pix-levaetras"}},
				PassthroughPayments: []reconciliation.Payment{{Amount: dec("30"), PaymentMethodID: "faturar-taxa"}},
			},
		}

		res := reconciliation.Classify(data, methods)

		assert.True(t, res.IsZero())
		assert.Empty(t, res.Routes)
	})

	t.Run("unknown method is ignored", func(t *testing.T) {
		data := reconciliation.Data{
			"A": {FeePayments: []reconciliation.Payment{
				{Amount: dec("4"), PaymentMethodID: "deleted-method"},
				{Amount: dec("6"), PaymentMethodID: "faturar-taxa"},
			}},
		}

		res := reconciliation.Classify(data, methods)

		assertAmount(t, "6", res.FeeDebit)
		assertAmount(t, "0", res.PassthroughCredit)
	})

	t.Run("empty data", func(t *testing.T) {
		res := reconciliation.Classify(nil, methods)
		assert.True(t, res.IsZero())
	})
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(reconciliation.Data)
		kinds  []reconciliation.IssueKind
	}{
		{
			name:   "complete",
			mutate: func(reconciliation.Data) {},
		},
		{
			name: "within epsilon",
			mutate: func(d reconciliation.Data) {
				rec := d["B"]
				rec.FeePayments = []reconciliation.Payment{{Amount: dec("14.99"), PaymentMethodID: "faturar-taxa"}}
				d["B"] = rec
			},
		},
		{
			name: "underpaid fee",
			mutate: func(d reconciliation.Data) {
				rec := d["B"]
				rec.FeePayments = []reconciliation.Payment{{Amount: dec("14.98"), PaymentMethodID: "faturar-taxa"}}
				d["B"] = rec
			},
			kinds: []reconciliation.IssueKind{reconciliation.IssueFeeMismatch},
		},
		{
			name: "overpaid passthrough",
			mutate: func(d reconciliation.Data) {
				rec := d["B"]
				rec.PassthroughPayments = append(rec.PassthroughPayments, reconciliation.Payment{Amount: dec("1"), PaymentMethodID: "repassar-valor"})
				d["B"] = rec
			},
			kinds: []reconciliation.IssueKind{reconciliation.IssuePassthroughMismatch},
		},
		{
			name: "passthrough recorded on a route without extra",
			mutate: func(d reconciliation.Data) {
				rec := d["A"]
				rec.PassthroughPayments = []reconciliation.Payment{{Amount: dec("5"), PaymentMethodID: "repassar-valor"}}
				d["A"] = rec
			},
			kinds: []reconciliation.IssueKind{reconciliation.IssuePassthroughMismatch},
		},
		{
			name: "payment without method",
			mutate: func(d reconciliation.Data) {
				rec := d["A"]
				rec.FeePayments[0].PaymentMethodID = ""
				d["A"] = rec
			},
			kinds: []reconciliation.IssueKind{reconciliation.IssueMissingMethod},
		},
		{
			name:   "missing route entry",
			mutate: func(d reconciliation.Data) { delete(d, "A") },
			kinds:  []reconciliation.IssueKind{reconciliation.IssueMissingRoute},
		},
		{
			name: "entry for a route outside the request",
			mutate: func(d reconciliation.Data) {
				d["Z"] = reconciliation.RouteRecord{
					FeePayments: []reconciliation.Payment{{Amount: dec("100"), PaymentMethodID: "faturar-taxa"}},
				}
			},
			kinds: []reconciliation.IssueKind{reconciliation.IssueUnknownRoute},
		},
		{
			name:   "empty entry for a route outside the request",
			mutate: func(d reconciliation.Data) { d["Z"] = reconciliation.RouteRecord{} },
			kinds:  []reconciliation.IssueKind{reconciliation.IssueUnknownRoute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dues, data := scenario()
			tt.mutate(data)

			issues := reconciliation.Check(dues, data)

			var kinds []reconciliation.IssueKind
			for _, i := range issues {
				kinds = append(kinds, i.Kind)
				assert.NotEmpty(t, i.String())
			}

			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, len(tt.kinds) == 0, reconciliation.IsComplete(dues, data))
		})
	}
}

func TestCheck_UnknownRouteCarriesAmount(t *testing.T) {
	dues := []reconciliation.Due{{RouteID: "A", Fee: dec("10"), Passthrough: decimal.Zero}}
	data := reconciliation.Data{
		"A": {FeePayments: []reconciliation.Payment{{Amount: dec("10"), PaymentMethodID: "pix-levaetras"}}},
		"stray": {
			FeePayments:         []reconciliation.Payment{{Amount: dec("100"), PaymentMethodID: "faturar-taxa"}},
			PassthroughPayments: []reconciliation.Payment{{Amount: dec("20"), PaymentMethodID: "repassar-valor"}},
		},
	}

	issues := reconciliation.Check(dues, data)

	require.Len(t, issues, 1)
	assert.Equal(t, "stray", issues[0].RouteID)
	assert.Equal(t, reconciliation.IssueUnknownRoute, issues[0].Kind)
	assertAmount(t, "120", issues[0].Got)
	assert.Contains(t, issues[0].String(), "não pertence")
	assert.False(t, reconciliation.IsComplete(dues, data))
}

func TestIsComplete_ZeroRoute(t *testing.T) {
	dues := []reconciliation.Due{{RouteID: "A", Fee: decimal.Zero, Passthrough: decimal.Zero}}

	assert.True(t, reconciliation.IsComplete(dues, reconciliation.Data{"A": {}}))
	assert.False(t, reconciliation.IsComplete(dues, reconciliation.Data{}))
}

func TestFromInput(t *testing.T) {
	data := reconciliation.FromInput([]reconciliation.RouteInput{
		{
			RouteID: "A",
			FeePayments: []reconciliation.PaymentInput{
				{ID: "p1", Amount: "R$ 1.234,56", PaymentMethodID: "faturar-taxa"},
				{ID: "p2", Amount: "0,00", PaymentMethodID: "faturar-taxa"},
				{ID: "p3", Amount: "abc", PaymentMethodID: "faturar-taxa"},
			},
			PassthroughPayments: []reconciliation.PaymentInput{
				{Amount: "50", PaymentMethodID: "repassar-valor"},
			},
		},
	})

	rec, ok := data["A"]
	require.True(t, ok)
	require.Len(t, rec.FeePayments, 1)
	assert.Equal(t, "p1", rec.FeePayments[0].ID)
	assertAmount(t, "1234.56", rec.FeePayments[0].Amount)
	require.Len(t, rec.PassthroughPayments, 1)
	assert.NotEmpty(t, rec.PassthroughPayments[0].ID)
}
