package statement

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/money"
)

const dateLayout = "02/01/2006"

type Invoices interface {
	List(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, error)
}

// Item links an exported invoice to its statement file.
type Item struct {
	Invoice  *invoice.Invoice
	FilePath string
}

type Filter struct {
	ClientID  string
	Status    invoice.Status
	StartDate *time.Time
	EndDate   *time.Time
}

// Service renders invoice statements.
type Service struct {
	invoices Invoices
}

func NewService(invoices Invoices) *Service {
	return &Service{invoices: invoices}
}

// Export writes one statement file per invoice matching the filter to outputDir.
func (s *Service) Export(ctx context.Context, filter Filter, outputDir string) ([]Item, error) {
	invoices, err := s.invoices.List(ctx, invoice.Filter{ClientID: filter.ClientID, Status: filter.Status})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(invoices))

	for _, inv := range invoices {
		if filter.StartDate != nil && inv.IssuedAt.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && inv.IssuedAt.After(*filter.EndDate) {
			continue
		}

		path := filepath.Join(outputDir, filename(inv))
		if err := os.WriteFile(path, []byte(Render(inv)), 0o644); err != nil {
			return nil, fmt.Errorf("writing statement for %s: %w", inv.Number, err)
		}

		items = append(items, Item{Invoice: inv, FilePath: path})
	}

	return items, nil
}

// NetSettlement is what the company owes the client once both sides are paid:
// the passthrough collected on the client's behalf minus the delivery fees.
// A negative value means the client owes the company.
func NetSettlement(inv *invoice.Invoice) decimal.Decimal {
	return inv.TotalPassthrough.Sub(inv.TotalFee)
}

// Render produces the plain text statement of an invoice.
func Render(inv *invoice.Invoice) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fatura %s\n", inv.Number)
	fmt.Fprintf(&sb, "Cliente: %s\n", inv.ClientName)
	fmt.Fprintf(&sb, "Emissão: %s | Vencimento: %s\n", inv.IssuedAt.Format(dateLayout), inv.DueAt.Format(dateLayout))
	fmt.Fprintf(&sb, "Status: %s | Taxas: %s | Repasse: %s\n\n", inv.Status, inv.FeeStatus, inv.PassthroughStatus)

	sb.WriteString("Entregas:\n")

	for _, item := range inv.Items {
		fmt.Fprintf(&sb, "* %s | %s | %s | Taxa %s | Repasse %s\n",
			item.Date.Format(dateLayout), item.Description, item.CourierName,
			money.Format(item.Fee), money.Format(item.Passthrough))

		for _, extra := range item.ExtraFees {
			fmt.Fprintf(&sb, "    + %s %s\n", extra.Name, money.Format(extra.Amount))
		}
	}

	fmt.Fprintf(&sb, "\nTotal de entregas: %d\n", inv.DeliveryCount)
	fmt.Fprintf(&sb, "Total de taxas: %s\n", money.Format(inv.TotalFee))
	fmt.Fprintf(&sb, "Total de repasse: %s\n", money.Format(inv.TotalPassthrough))
	fmt.Fprintf(&sb, "Saldo líquido: %s\n", describeNet(NetSettlement(inv)))

	if inv.Notes != "" {
		fmt.Fprintf(&sb, "\nObservações: %s\n", inv.Notes)
	}

	return sb.String()
}

// Summary lists the exported invoices, one line each.
func (s *Service) Summary(items []Item) string {
	var sb strings.Builder

	total := decimal.Zero

	for _, item := range items {
		inv := item.Invoice
		net := NetSettlement(inv)
		total = total.Add(net)

		fmt.Fprintf(&sb, "* %s | %s | %s | taxas %s | repasse %s | %s\n",
			inv.Number, inv.ClientName, inv.Status,
			money.Format(inv.TotalFee), money.Format(inv.TotalPassthrough), filepath.Base(item.FilePath))
	}

	fmt.Fprintf(&sb, "Saldo líquido do período: %s\n", describeNet(total))

	return sb.String()
}

func describeNet(net decimal.Decimal) string {
	switch {
	case net.IsPositive():
		return money.Format(net) + " a repassar ao cliente"
	case net.IsNegative():
		return money.Format(net.Neg()) + " a receber do cliente"
	default:
		return "sem saldo a liquidar"
	}
}

func filename(inv *invoice.Invoice) string {
	return fmt.Sprintf("%s_%s.txt", inv.IssuedAt.Format("20060102"), inv.Number)
}
