package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

var (
	ErrReconciliationIncomplete = errors.New("reconciliation incomplete")
	ErrUnknownClient            = errors.New("unknown client")
)

//go:generate mockgen -source=service.go -destination=dependencies_mock.go -package=billing
type Requests interface {
	Get(ctx context.Context, id string) (*delivery.Request, error)
	UpdateStatus(ctx context.Context, id string, status delivery.Status, details delivery.Details) (*delivery.Request, error)
}

type Clients interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

type Methods interface {
	ReconciliationMethods(ctx context.Context) ([]settings.ReconciliationMethod, error)
}

type Invoices interface {
	AttachCompletedRequest(ctx context.Context, req *delivery.Request, result reconciliation.Result, billing invoice.BillingType) (*invoice.AttachOutcome, error)
}

type Transactions interface {
	Add(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

// Service sequences a request's status change with the ledger writes it triggers.
type Service struct {
	requests     Requests
	clients      Clients
	methods      Methods
	invoices     Invoices
	transactions Transactions
}

func NewService(requests Requests, clients Clients, methods Methods, invoices Invoices, transactions Transactions) *Service {
	return &Service{
		requests:     requests,
		clients:      clients,
		methods:      methods,
		invoices:     invoices,
		transactions: transactions,
	}
}

// Effects reports the side effects of a status change.
type Effects struct {
	Request           *delivery.Request        `json:"request"`
	Transaction       *transaction.Transaction `json:"transaction,omitempty"`
	Invoice           *invoice.Invoice         `json:"invoice,omitempty"`
	InvoiceCreated    bool                     `json:"invoiceCreated"`
	NoFinancialImpact bool                     `json:"noFinancialImpact"`
}

// UpdateRequestStatus changes a request's status. Concluding a request of a
// pre-paid client debits its delivery fees from the client balance; concluding a
// request of an invoiced client requires a complete reconciliation and adds the
// billed amounts to the client's open invoice.
//
// The writes are not transactional: when a ledger write fails after the status
// change, the returned Effects still describe what was applied.
func (s *Service) UpdateRequestStatus(ctx context.Context, id string, status delivery.Status, details delivery.Details) (*Effects, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading request: %w", err)
	}

	if req == nil {
		return nil, nil
	}

	if status != delivery.StatusConcluded {
		updated, err := s.requests.UpdateStatus(ctx, id, status, details)
		if err != nil || updated == nil {
			return nil, err
		}

		return &Effects{Request: updated}, nil
	}

	if !delivery.CanTransition(req.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", req.Status, status, delivery.ErrInvalidTransition)
	}

	cl, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading client: %w", err)
	}

	if cl == nil {
		return nil, fmt.Errorf("client %q: %w", req.ClientID, ErrUnknownClient)
	}

	if cl.IsInvoiced() {
		return s.concludeInvoiced(ctx, req, cl, details)
	}

	return s.concludePrepaid(ctx, req, details)
}

// concludePrepaid concludes the request and debits its total fee from the client
// balance. A request whose total fee is zero writes no debit, since the ledger
// only accepts positive amounts, and is reported as having no financial impact.
func (s *Service) concludePrepaid(ctx context.Context, req *delivery.Request, details delivery.Details) (*Effects, error) {
	updated, err := s.requests.UpdateStatus(ctx, req.ID, delivery.StatusConcluded, details)
	if err != nil || updated == nil {
		return nil, err
	}

	effects := &Effects{Request: updated}

	if !updated.TotalFee.IsPositive() {
		effects.NoFinancialImpact = true
		return effects, nil
	}

	tx, err := s.transactions.Add(ctx, transaction.CreateParams{
		Type:         transaction.TypeDebit,
		Origin:       transaction.OriginDeliveryFee,
		Description:  "Taxa da entrega " + updated.Code,
		Amount:       updated.TotalFee,
		ClientID:     updated.ClientID,
		ClientName:   updated.ClientName,
		ClientAvatar: updated.ClientAvatar,
	})
	if err != nil {
		slog.Error("debiting delivery fee", "request", updated.Code, "error", err)
		return effects, fmt.Errorf("request %s concluded without debit: %w", updated.Code, err)
	}

	effects.Transaction = tx

	return effects, nil
}

func (s *Service) concludeInvoiced(ctx context.Context, req *delivery.Request, cl *client.Client, details delivery.Details) (*Effects, error) {
	data := details.Reconciliation
	if data == nil {
		data = req.Reconciliation
	}

	if issues := reconciliation.Check(req.Dues(), data); len(issues) > 0 || len(data) == 0 {
		return nil, fmt.Errorf("request %s: %d pending routes: %w", req.Code, len(issues), ErrReconciliationIncomplete)
	}

	methods, err := s.methods.ReconciliationMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reconciliation methods: %w", err)
	}

	details.Reconciliation = data

	updated, err := s.requests.UpdateStatus(ctx, req.ID, delivery.StatusConcluded, details)
	if err != nil || updated == nil {
		return nil, err
	}

	effects := &Effects{Request: updated}

	result := reconciliation.Classify(data, methods)
	if result.IsZero() {
		effects.NoFinancialImpact = true
		return effects, nil
	}

	outcome, err := s.invoices.AttachCompletedRequest(ctx, updated, result, invoice.BillingTypeFor(cl.BillingFrequency))
	if err != nil {
		slog.Error("attaching request to invoice", "request", updated.Code, "error", err)
		return effects, fmt.Errorf("request %s concluded without invoice: %w", updated.Code, err)
	}

	if outcome != nil {
		effects.Invoice = outcome.Invoice
		effects.InvoiceCreated = outcome.Created

		slog.Info("request billed",
			"request", updated.Code,
			"invoice", outcome.Invoice.Number,
			"fee", result.FeeDebit.StringFixed(2),
			"passthrough", result.PassthroughCredit.StringFixed(2),
		)
	}

	return effects, nil
}

// CheckReconciliation validates recorded payments against a request's routes
// without changing anything. Unknown requests return (nil, nil).
func (s *Service) CheckReconciliation(ctx context.Context, id string, data reconciliation.Data) ([]reconciliation.Issue, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil || req == nil {
		return nil, err
	}

	issues := reconciliation.Check(req.Dues(), data)
	if issues == nil {
		issues = []reconciliation.Issue{}
	}

	return issues, nil
}
