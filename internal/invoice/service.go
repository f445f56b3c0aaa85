package invoice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
)

var (
	ErrInvalidTransition = errors.New("invalid invoice transition")
	ErrSettled           = errors.New("invoice is settled")
)

const DefaultDueDays = 30

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	Load(ctx context.Context) ([]*Invoice, error)
	Save(ctx context.Context, invoices []*Invoice) error
}

type Service struct {
	mu      sync.Mutex
	repo    Repository
	now     func() time.Time
	dueDays int
}

type Option func(*Service)

// WithClock overrides the time source used for issue dates and history.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDueDays sets how many days after issue a new invoice is due.
func WithDueDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.dueDays = days
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, dueDays: DefaultDueDays}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Filter struct {
	ClientID string
	Status   Status
}

// AttachOutcome describes what happened to the client's open invoice.
type AttachOutcome struct {
	Invoice *Invoice
	Created bool
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Invoice, error) {
	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Invoice, 0, len(invoices))

	for _, inv := range invoices {
		if filter.ClientID != "" && inv.ClientID != filter.ClientID {
			continue
		}

		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}

		out = append(out, inv)
	}

	slices.SortStableFunc(out, func(a, b *Invoice) int {
		return b.IssuedAt.Compare(a.IssuedAt)
	})

	return out, nil
}

// Get returns the invoice with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(invoices, id); i >= 0 {
		return invoices[i], nil
	}

	return nil, nil
}

// OpenForClient returns the invoice new deliveries of the client attach to, or nil.
func (s *Service) OpenForClient(ctx context.Context, clientID string) (*Invoice, error) {
	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if i := openIndex(invoices, clientID); i >= 0 {
		return invoices[i], nil
	}

	return nil, nil
}

// AttachCompletedRequest adds one line item per route of a concluded request to
// the client's open invoice, creating the invoice when there is none. Each item
// carries the amounts classified for its route, so the invoice totals grow by
// exactly the classified totals. A result with no financial impact is a no-op.
func (s *Service) AttachCompletedRequest(ctx context.Context, req *delivery.Request, result reconciliation.Result, billing BillingType) (*AttachOutcome, error) {
	if result.IsZero() {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(req.Routes))

	for _, rt := range req.Routes {
		classified := result.Route(rt.ID)
		items = append(items, LineItem{
			ID:          rt.ID,
			Date:        req.CreatedAt,
			Description: describe(req, rt),
			CourierID:   req.CourierID,
			CourierName: courierName(req),
			Fee:         classified.FeeDebit,
			Passthrough: classified.PassthroughCredit,
		})
	}

	now := s.now()
	outcome := &AttachOutcome{}

	if i := openIndex(invoices, req.ClientID); i >= 0 {
		inv := invoices[i]
		inv.Items = append(inv.Items, items...)
		invoices[i] = RecalculateTotals(inv)
		outcome.Invoice = invoices[i]
	} else {
		if billing == "" {
			billing = BillingManual
		}

		inv := &Invoice{
			ID:                uuid.NewString(),
			Number:            nextNumber(invoices, now.Year()),
			ClientID:          req.ClientID,
			ClientName:        req.ClientName,
			BillingType:       billing,
			IssuedAt:          now,
			DueAt:             now.AddDate(0, 0, s.dueDays),
			FeeStatus:         FeePending,
			PassthroughStatus: PassthroughPending,
			Status:            StatusOpen,
			Items:             items,
		}
		inv.record(uuid.NewString(), ActionCreated, now, req.Code)

		inv = RecalculateTotals(inv)
		invoices = append(invoices, inv)
		outcome.Invoice = inv
		outcome.Created = true
	}

	if err := s.repo.Save(ctx, invoices); err != nil {
		return nil, fmt.Errorf("attaching request %s: %w", req.Code, err)
	}

	return outcome, nil
}

// RecordFeePayment marks the delivery fees as paid. The invoice is finalized when
// there is nothing left to transfer to the client. Unknown ids are ignored and
// finalized invoices fail with ErrSettled.
func (s *Service) RecordFeePayment(ctx context.Context, id, details string) (*Invoice, error) {
	return s.mutate(ctx, id, func(inv *Invoice, now time.Time) (bool, error) {
		if inv.Settled() {
			return false, fmt.Errorf("recording fee payment on invoice %s: %w", inv.Number, ErrSettled)
		}

		inv.FeeStatus = FeePaid
		inv.record(uuid.NewString(), ActionFeePayment, now, details)

		if inv.PassthroughStatus == PassthroughTransferred || inv.TotalPassthrough.IsZero() {
			inv.Status = StatusFinalized
			inv.record(uuid.NewString(), ActionFinalized, now, "")

			return true, nil
		}

		inv.Status = StatusPaid

		return true, nil
	})
}

// RecordPassthroughPayment marks the passthrough as transferred to the client.
// Unknown ids are ignored and finalized invoices fail with ErrSettled.
func (s *Service) RecordPassthroughPayment(ctx context.Context, id, details string) (*Invoice, error) {
	return s.mutate(ctx, id, func(inv *Invoice, now time.Time) (bool, error) {
		if inv.Settled() {
			return false, fmt.Errorf("recording passthrough payment on invoice %s: %w", inv.Number, ErrSettled)
		}

		inv.PassthroughStatus = PassthroughTransferred
		inv.record(uuid.NewString(), ActionPassthroughPayment, now, details)

		if inv.FeeStatus == FeePaid {
			inv.Status = StatusFinalized
			inv.record(uuid.NewString(), ActionFinalized, now, "")
		}

		return true, nil
	})
}

// Close stops an open invoice from receiving new deliveries.
func (s *Service) Close(ctx context.Context, id, details string) (*Invoice, error) {
	return s.mutate(ctx, id, func(inv *Invoice, now time.Time) (bool, error) {
		if inv.Status != StatusOpen {
			return false, fmt.Errorf("closing %s invoice %s: %w", inv.Status, inv.Number, ErrInvalidTransition)
		}

		inv.Status = StatusClosed
		inv.record(uuid.NewString(), ActionClosed, now, details)

		return true, nil
	})
}

// MarkOverdue flags every unpaid open or closed invoice whose due date is before now.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) ([]*Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var marked []*Invoice

	for _, inv := range invoices {
		if inv.Status != StatusOpen && inv.Status != StatusClosed {
			continue
		}

		if inv.FeeStatus == FeePaid || !inv.DueAt.Before(now) {
			continue
		}

		inv.FeeStatus = FeeOverdue
		inv.Status = StatusOverdue
		inv.record(uuid.NewString(), ActionOverdue, now, "")
		marked = append(marked, inv)
	}

	if len(marked) == 0 {
		return nil, nil
	}

	if err := s.repo.Save(ctx, invoices); err != nil {
		return nil, fmt.Errorf("marking overdue invoices: %w", err)
	}

	return marked, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		return nil
	}

	return s.repo.Save(ctx, slices.Delete(invoices, i, i+1))
}

func (s *Service) AddLineItem(ctx context.Context, id string, item LineItem) (*Invoice, error) {
	return s.mutateItems(ctx, id, func(inv *Invoice, now time.Time) (Action, string, bool) {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}

		if item.Date.IsZero() {
			item.Date = now
		}

		inv.Items = append(inv.Items, item)

		return ActionItemAdded, item.Description, true
	})
}

// UpdateLineItem replaces the item with the same id. Unknown items are ignored.
func (s *Service) UpdateLineItem(ctx context.Context, id string, item LineItem) (*Invoice, error) {
	return s.mutateItems(ctx, id, func(inv *Invoice, _ time.Time) (Action, string, bool) {
		i := slices.IndexFunc(inv.Items, func(l LineItem) bool { return l.ID == item.ID })
		if i < 0 {
			return "", "", false
		}

		if item.Date.IsZero() {
			item.Date = inv.Items[i].Date
		}

		inv.Items[i] = item

		return ActionItemUpdated, item.Description, true
	})
}

// RemoveLineItem drops an item from the invoice. Unknown items are ignored.
func (s *Service) RemoveLineItem(ctx context.Context, id, itemID string) (*Invoice, error) {
	return s.mutateItems(ctx, id, func(inv *Invoice, _ time.Time) (Action, string, bool) {
		i := slices.IndexFunc(inv.Items, func(l LineItem) bool { return l.ID == itemID })
		if i < 0 {
			return "", "", false
		}

		desc := inv.Items[i].Description
		inv.Items = slices.Delete(inv.Items, i, i+1)

		return ActionItemRemoved, desc, true
	})
}

// mutateItems applies a line item edit, recalculates the totals and records it.
// Settled invoices cannot be edited.
func (s *Service) mutateItems(ctx context.Context, id string, edit func(*Invoice, time.Time) (Action, string, bool)) (*Invoice, error) {
	return s.mutate(ctx, id, func(inv *Invoice, now time.Time) (bool, error) {
		if inv.Settled() {
			return false, fmt.Errorf("editing invoice %s: %w", inv.Number, ErrSettled)
		}

		action, details, ok := edit(inv, now)
		if !ok {
			return false, nil
		}

		*inv = *RecalculateTotals(inv)
		inv.record(uuid.NewString(), action, now, details)

		return true, nil
	})
}

// mutate loads the collection, applies fn to the invoice with the given id and
// saves when fn reports a change. Unknown ids return (nil, nil) without writing.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Invoice, time.Time) (bool, error)) (*Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		return nil, nil
	}

	inv := invoices[i]

	changed, err := fn(inv, s.now())
	if err != nil {
		return nil, err
	}

	if !changed {
		return nil, nil
	}

	if err := s.repo.Save(ctx, invoices); err != nil {
		return nil, fmt.Errorf("saving invoice %s: %w", inv.Number, err)
	}

	return inv, nil
}

func indexOf(invoices []*Invoice, id string) int {
	return slices.IndexFunc(invoices, func(inv *Invoice) bool { return inv.ID == id })
}

func openIndex(invoices []*Invoice, clientID string) int {
	return slices.IndexFunc(invoices, func(inv *Invoice) bool {
		return inv.ClientID == clientID && inv.Status == StatusOpen
	})
}

// nextNumber returns FAT-<year>-<seq>, seq following the highest number issued that year.
func nextNumber(invoices []*Invoice, year int) string {
	prefix := fmt.Sprintf("FAT-%d-", year)
	highest := 0

	for _, inv := range invoices {
		seq, ok := strings.CutPrefix(inv.Number, prefix)
		if !ok {
			continue
		}

		if n, err := strconv.Atoi(seq); err == nil {
			highest = max(highest, n)
		}
	}

	return fmt.Sprintf("%s%04d", prefix, highest+1)
}

func describe(req *delivery.Request, rt delivery.Route) string {
	if rt.Responsible == "" {
		return "Entrega " + req.Code
	}

	return fmt.Sprintf("Entrega %s - %s", req.Code, rt.Responsible)
}

func courierName(req *delivery.Request) string {
	if req.CourierName == "" {
		return "N/A"
	}

	return req.CourierName
}

// BillingTypeFor maps a client's billing frequency to the invoice billing type.
func BillingTypeFor(frequency client.BillingFrequency) BillingType {
	switch frequency {
	case client.FrequencyMonthly:
		return BillingMonthly
	case client.FrequencyWeekly:
		return BillingWeekly
	case client.FrequencyDaily:
		return BillingDaily
	default:
		return BillingManual
	}
}
