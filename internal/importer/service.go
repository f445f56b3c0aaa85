package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/levaetras/internal/importer/rates"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

// ErrInvalidTable wraps every error caused by the uploaded file itself.
var ErrInvalidTable = errors.New("invalid rate table")

type Parser interface {
	Parse(r io.Reader) ([]settings.NeighborhoodRate, error)
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Neighborhoods interface {
	ImportNeighborhoods(ctx context.Context, rates []settings.NeighborhoodRate) (*settings.ImportResult, error)
}

// Service loads neighborhood rate tables into the settings.
type Service struct {
	parser        Parser
	neighborhoods Neighborhoods
}

func NewService(neighborhoods Neighborhoods) *Service {
	return &Service{
		parser:        rates.NewParser(),
		neighborhoods: neighborhoods,
	}
}

func (s *Service) Import(ctx context.Context, r io.Reader) (*settings.ImportResult, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	if len(parsed) == 0 {
		return &settings.ImportResult{}, nil
	}

	return s.neighborhoods.ImportNeighborhoods(ctx, parsed)
}
