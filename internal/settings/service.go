package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/levaetras/internal/storage"
)

var ErrRoleInUse = errors.New("não é possível remover um cargo que está em uso por um ou mais usuários")

// Service is the read-mostly provider of back-office configuration.
type Service struct {
	mu sync.Mutex

	regions               *storage.Collection[Region]
	neighborhoods         *storage.Collection[Neighborhood]
	paymentMethods        *storage.Collection[PaymentMethod]
	reconciliationMethods *storage.Collection[ReconciliationMethod]
	roles                 *storage.Collection[Role]
	users                 *storage.Collection[User]
}

func NewService(backend storage.Backend) *Service {
	return &Service{
		regions:               storage.NewCollection(backend, storage.KeyRegions, defaultRegions),
		neighborhoods:         storage.NewCollection(backend, storage.KeyNeighborhoods, defaultNeighborhoods),
		paymentMethods:        storage.NewCollection(backend, storage.KeyPaymentMethods, defaultPaymentMethods),
		reconciliationMethods: storage.NewCollection(backend, storage.KeyReconciliationMethod, defaultReconciliationMethods),
		roles:                 storage.NewCollection(backend, storage.KeyRoles, defaultRoles),
		users:                 storage.NewCollection(backend, storage.KeyUsers, defaultUsers),
	}
}

func (s *Service) Regions(ctx context.Context) ([]Region, error) {
	return s.regions.Load(ctx)
}

func (s *Service) Neighborhoods(ctx context.Context) ([]Neighborhood, error) {
	return s.neighborhoods.Load(ctx)
}

// Neighborhood returns the neighborhood with the given id, or nil when it does not exist.
func (s *Service) Neighborhood(ctx context.Context, id string) (*Neighborhood, error) {
	items, err := s.neighborhoods.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, nil
}

func (s *Service) PaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return s.paymentMethods.Load(ctx)
}

func (s *Service) EnabledPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	all, err := s.paymentMethods.Load(ctx)
	if err != nil {
		return nil, err
	}

	enabled := make([]PaymentMethod, 0, len(all))

	for _, m := range all {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}

	return enabled, nil
}

func (s *Service) ReconciliationMethods(ctx context.Context) ([]ReconciliationMethod, error) {
	return s.reconciliationMethods.Load(ctx)
}

func (s *Service) Roles(ctx context.Context) ([]Role, error) {
	return s.roles.Load(ctx)
}

func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.users.Load(ctx)
}

// DeleteRole removes a role. It fails with ErrRoleInUse while any user still references it.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Load(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.RoleID == id {
			return fmt.Errorf("deleting role %s: %w", id, ErrRoleInUse)
		}
	}

	roles, err := s.roles.Load(ctx)
	if err != nil {
		return err
	}

	kept := roles[:0]

	for _, r := range roles {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	return s.roles.Save(ctx, kept)
}

// DeleteRegion removes a region together with its neighborhoods.
func (s *Service) DeleteRegion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	regions, err := s.regions.Load(ctx)
	if err != nil {
		return err
	}

	keptRegions := make([]Region, 0, len(regions))

	for _, r := range regions {
		if r.ID != id {
			keptRegions = append(keptRegions, r)
		}
	}

	neighborhoods, err := s.neighborhoods.Load(ctx)
	if err != nil {
		return err
	}

	keptNeighborhoods := make([]Neighborhood, 0, len(neighborhoods))

	for _, n := range neighborhoods {
		if n.RegionID != id {
			keptNeighborhoods = append(keptNeighborhoods, n)
		}
	}

	if err := s.regions.Save(ctx, keptRegions); err != nil {
		return err
	}

	return s.neighborhoods.Save(ctx, keptNeighborhoods)
}

// ImportResult counts what ImportNeighborhoods changed.
type ImportResult struct {
	Created        int
	Updated        int
	RegionsCreated int
}

// ImportNeighborhoods upserts neighborhood fees by name (case-insensitive).
// Regions are matched by name and created when missing.
func (s *Service) ImportNeighborhoods(ctx context.Context, rates []NeighborhoodRate) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regions, err := s.regions.Load(ctx)
	if err != nil {
		return nil, err
	}

	neighborhoods, err := s.neighborhoods.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	regionByName := make(map[string]string, len(regions))
	for _, r := range regions {
		regionByName[normalize(r.Name)] = r.ID
	}

	byName := make(map[string]int, len(neighborhoods))
	for i, n := range neighborhoods {
		byName[normalize(n.Name)] = i
	}

	for _, rate := range rates {
		regionID := ""

		if rate.Region != "" {
			id, ok := regionByName[normalize(rate.Region)]
			if !ok {
				id = uuid.NewString()
				regions = append(regions, Region{ID: id, Name: strings.TrimSpace(rate.Region)})
				regionByName[normalize(rate.Region)] = id
				result.RegionsCreated++
			}

			regionID = id
		}

		if idx, ok := byName[normalize(rate.Name)]; ok {
			neighborhoods[idx].Fee = rate.Fee
			if regionID != "" {
				neighborhoods[idx].RegionID = regionID
			}

			result.Updated++

			continue
		}

		neighborhoods = append(neighborhoods, Neighborhood{
			ID:       uuid.NewString(),
			Name:     strings.TrimSpace(rate.Name),
			Fee:      rate.Fee,
			RegionID: regionID,
		})
		byName[normalize(rate.Name)] = len(neighborhoods) - 1
		result.Created++
	}

	if result.RegionsCreated > 0 {
		if err := s.regions.Save(ctx, regions); err != nil {
			return nil, err
		}
	}

	if err := s.neighborhoods.Save(ctx, neighborhoods); err != nil {
		return nil, err
	}

	return result, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
