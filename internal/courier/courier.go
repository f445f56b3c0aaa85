package courier

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/avatar"
)

type CommissionType string

const (
	CommissionPercent CommissionType = "percentual"
	CommissionFixed   CommissionType = "fixo"
)

// Courier is a driver ("entregador") who can be assigned to delivery requests.
type Courier struct {
	ID              string          `json:"id"`
	Name            string          `json:"nome"`
	Document        string          `json:"documento"`
	Email           string          `json:"email"`
	Phone           string          `json:"telefone"`
	City            string          `json:"cidade"`
	Neighborhood    string          `json:"bairro"`
	Vehicle         string          `json:"veiculo"`
	Status          string          `json:"status"`
	CommissionType  CommissionType  `json:"tipoComissao"`
	CommissionValue decimal.Decimal `json:"valorComissao"`
	Avatar          string          `json:"avatar"`
}

type Repository interface {
	Load(ctx context.Context) ([]*Courier, error)
	Save(ctx context.Context, couriers []*Courier) error
}

type Service struct {
	mu   sync.Mutex
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Courier, error) {
	return s.repo.Load(ctx)
}

// Get returns the courier with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Courier, error) {
	couriers, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range couriers {
		if c.ID == id {
			return c, nil
		}
	}

	return nil, nil
}

func (s *Service) Create(ctx context.Context, c Courier) (*Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	couriers, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.Avatar = avatar.URL(c.Name)
	created := &c

	if err := s.repo.Save(ctx, append([]*Courier{created}, couriers...)); err != nil {
		return nil, fmt.Errorf("creating courier: %w", err)
	}

	return created, nil
}

// Update replaces the stored courier with the same id. Unknown ids are ignored.
func (s *Service) Update(ctx context.Context, c *Courier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	couriers, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	for i := range couriers {
		if couriers[i].ID == c.ID {
			c.Avatar = avatar.URL(c.Name)
			couriers[i] = c

			return s.repo.Save(ctx, couriers)
		}
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	couriers, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	kept := make([]*Courier, 0, len(couriers))

	for _, c := range couriers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	return s.repo.Save(ctx, kept)
}

func Seed() []*Courier {
	return []*Courier{
		{
			ID:              "entregador-1",
			Name:            "Ana Silva",
			Document:        "11122233344",
			Email:           "ana.silva@entregas.com",
			Phone:           "(11) 98765-4321",
			City:            "São Paulo",
			Neighborhood:    "Pinheiros",
			Vehicle:         "Moto - Honda CG 160",
			Status:          "ativo",
			CommissionType:  CommissionPercent,
			CommissionValue: decimal.NewFromInt(10),
			Avatar:          avatar.URL("Ana Silva"),
		},
		{
			ID:              "entregador-2",
			Name:            "Carlos Souza",
			Document:        "55566677788",
			Email:           "carlos.souza@entregas.com",
			Phone:           "(11) 91234-5678",
			City:            "São Paulo",
			Neighborhood:    "Vila Madalena",
			Vehicle:         "Carro - Fiat Fiorino",
			Status:          "ativo",
			CommissionType:  CommissionFixed,
			CommissionValue: decimal.RequireFromString("7.5"),
			Avatar:          avatar.URL("Carlos Souza"),
		},
	}
}
