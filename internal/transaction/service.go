package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be positive")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type         Type
	Origin       Origin
	Description  string
	Amount       decimal.Decimal
	ClientID     string
	ClientName   string
	ClientAvatar string
}

type ListFilter struct {
	ClientID  string
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

// Add appends a transaction to the ledger. Entries are never changed afterwards.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("adding %s transaction: %w", params.Origin, ErrInvalidAmount)
	}

	tx := &Transaction{
		Type:         params.Type,
		Origin:       params.Origin,
		Description:  params.Description,
		Amount:       params.Amount,
		ClientID:     params.ClientID,
		ClientName:   params.ClientName,
		ClientAvatar: params.ClientAvatar,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Balance is the client's credits minus debits.
func (s *Service) Balance(ctx context.Context, clientID string) (decimal.Decimal, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{ClientID: clientID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing client transactions: %w", err)
	}

	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.Signed())
	}

	return balance, nil
}
