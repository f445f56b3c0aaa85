package statement

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
)

type fakeInvoices struct {
	invoices []*invoice.Invoice
	filter   invoice.Filter
}

func (f *fakeInvoices) List(_ context.Context, filter invoice.Filter) ([]*invoice.Invoice, error) {
	f.filter = filter
	return f.invoices, nil
}

func sample(number string, issued time.Time) *invoice.Invoice {
	return invoice.RecalculateTotals(&invoice.Invoice{
		Number:            number,
		ClientID:          "client-1",
		ClientName:        "Padaria Pão Quente",
		IssuedAt:          issued,
		DueAt:             issued.AddDate(0, 0, 30),
		Status:            invoice.StatusOpen,
		FeeStatus:         invoice.FeePending,
		PassthroughStatus: invoice.PassthroughPending,
		Items: []invoice.LineItem{
			{
				ID:          "A",
				Date:        issued,
				Description: "Entrega SOL-1001 - Maria",
				CourierName: "Ana Silva",
				Fee:         decimal.RequireFromString("10"),
				ExtraFees:   []invoice.ExtraFee{{Name: "Espera", Amount: decimal.RequireFromString("5")}},
				Passthrough: decimal.Zero,
			},
			{
				ID:          "B",
				Date:        issued,
				Description: "Entrega SOL-1001 - João",
				CourierName: "Ana Silva",
				Fee:         decimal.RequireFromString("15"),
				Passthrough: decimal.RequireFromString("1234.56"),
			},
		},
	})
}

func TestRender(t *testing.T) {
	inv := sample("FAT-2025-0001", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	out := Render(inv)

	assert.Contains(t, out, "Fatura FAT-2025-0001")
	assert.Contains(t, out, "Emissão: 01/06/2025 | Vencimento: 01/07/2025")
	assert.Contains(t, out, "+ Espera R$ 5,00")
	assert.Contains(t, out, "Total de taxas: R$ 30,00")
	assert.Contains(t, out, "Total de repasse: R$ 1.234,56")
	assert.Contains(t, out, "Saldo líquido: R$ 1.204,56 a repassar ao cliente")
}

func TestNetSettlement(t *testing.T) {
	tests := []struct {
		name        string
		fee         string
		passthrough string
		want        string
	}{
		{name: "client is owed", fee: "10", passthrough: "50", want: "R$ 40,00 a repassar ao cliente"},
		{name: "client owes", fee: "60", passthrough: "50", want: "R$ 10,00 a receber do cliente"},
		{name: "even", fee: "50", passthrough: "50", want: "sem saldo a liquidar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{
				TotalFee:         decimal.RequireFromString(tt.fee),
				TotalPassthrough: decimal.RequireFromString(tt.passthrough),
			}

			assert.Equal(t, tt.want, describeNet(NetSettlement(inv)))
		})
	}
}

func TestExport(t *testing.T) {
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	fake := &fakeInvoices{invoices: []*invoice.Invoice{sample("FAT-2025-0002", june), sample("FAT-2025-0001", may)}}
	svc := NewService(fake)

	dir := t.TempDir()
	start := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	items, err := svc.Export(context.Background(), Filter{ClientID: "client-1", StartDate: &start}, dir)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "client-1", fake.filter.ClientID)

	assert.Equal(t, filepath.Join(dir, "20250601_FAT-2025-0002.txt"), items[0].FilePath)

	content, err := os.ReadFile(items[0].FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Fatura FAT-2025-0002")

	summary := svc.Summary(items)
	assert.Contains(t, summary, "FAT-2025-0002 | Padaria Pão Quente | Aberta")
	assert.Contains(t, summary, "20250601_FAT-2025-0002.txt")
	assert.Contains(t, summary, "Saldo líquido do período: R$ 1.204,56 a repassar ao cliente")
}
