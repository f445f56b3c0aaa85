package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/avatar"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	Load(ctx context.Context) ([]*Client, error)
	Save(ctx context.Context, clients []*Client) error
}

type Service struct {
	mu   sync.Mutex
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.Load(ctx)
}

// Get returns the client with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	clients, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}

	return nil, nil
}

func (s *Service) Create(ctx context.Context, c Client) (*Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.TotalOrders = 0
	c.TotalValue = decimal.Zero

	if c.Avatar == "" {
		c.Avatar = avatar.URL(c.Name)
	}

	created := &c

	if err := s.repo.Save(ctx, append([]*Client{created}, clients...)); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return created, nil
}

// Update replaces the stored client with the same id. Unknown ids are ignored.
func (s *Service) Update(ctx context.Context, c *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	found := false

	for i := range clients {
		if clients[i].ID == c.ID {
			clients[i] = c
			found = true
		}
	}

	if !found {
		return nil
	}

	return s.repo.Save(ctx, clients)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	kept := make([]*Client, 0, len(clients))

	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	return s.repo.Save(ctx, kept)
}

// Seed returns the clients a fresh installation starts with.
func Seed() []*Client {
	return []*Client{
		{
			ID:               "client-1",
			Name:             "Padaria Pão Quente",
			Kind:             KindCompany,
			Email:            "padaria@email.com",
			Phone:            "(21) 98877-6655",
			Address:          "Av. Atlântica, 1702",
			Neighborhood:     "Copacabana",
			City:             "Rio de Janeiro",
			State:            "RJ",
			Status:           StatusActive,
			TotalOrders:      58,
			TotalValue:       decimal.RequireFromString("1250.70"),
			Modality:         ModalityInvoiced,
			AutoBilling:      true,
			BillingFrequency: FrequencyWeekly,
			BillingWeekday:   "sexta",
			Avatar:           avatar.URL("Padaria Pão Quente"),
		},
		{
			ID:           "client-2",
			Name:         "Restaurante Sabor Divino",
			Kind:         KindCompany,
			Email:        "restaurante@email.com",
			Phone:        "(21) 97766-5544",
			Address:      "R. Conde de Bonfim, 444",
			Neighborhood: "Tijuca",
			City:         "Rio de Janeiro",
			State:        "RJ",
			Status:       StatusActive,
			TotalOrders:  120,
			TotalValue:   decimal.RequireFromString("3420.00"),
			Modality:     ModalityPrepaid,
			Avatar:       avatar.URL("Restaurante Sabor Divino"),
		},
	}
}
