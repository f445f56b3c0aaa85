package delivery

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
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

var (
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrJustificationRequired = errors.New("justification required")
	ErrLocked                = errors.New("request routes are locked")
	ErrUnknownNeighborhood   = errors.New("unknown neighborhood")
)

const (
	codePrefix = "SOL-"
	codeBase   = 1000
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=delivery
type Repository interface {
	Load(ctx context.Context) ([]*Request, error)
	Save(ctx context.Context, requests []*Request) error
}

type NeighborhoodLookup interface {
	Neighborhood(ctx context.Context, id string) (*settings.Neighborhood, error)
}

type Service struct {
	mu            sync.Mutex
	repo          Repository
	neighborhoods NeighborhoodLookup
	now           func() time.Time
}

func NewService(repo Repository, neighborhoods NeighborhoodLookup) *Service {
	return &Service{repo: repo, neighborhoods: neighborhoods, now: time.Now}
}

type RouteParams struct {
	ID                  string          `json:"id"`
	NeighborhoodID      string          `json:"bairroDestinoId"`
	Responsible         string          `json:"responsavel"`
	Phone               string          `json:"telefone"`
	Notes               string          `json:"observacoes"`
	Extra               decimal.Decimal `json:"valorExtra"`
	CollectFromCustomer bool            `json:"receberDoCliente"`
	PaymentMethodIDs    []string        `json:"meiosPagamentoAceitos"`
}

type CreateParams struct {
	ClientID             string        `json:"clienteId"`
	ClientName           string        `json:"clienteNome"`
	ClientAvatar         string        `json:"clienteAvatar"`
	OperationType        string        `json:"tipoOperacao"`
	OperationDescription string        `json:"operationDescription"`
	PickupPoint          string        `json:"pontoColeta"`
	Routes               []RouteParams `json:"rotas"`
}

// UpdateParams carries the fields to change; nil fields are left untouched.
type UpdateParams struct {
	OperationType        *string       `json:"tipoOperacao"`
	OperationDescription *string       `json:"operationDescription"`
	PickupPoint          *string       `json:"pontoColeta"`
	Routes               []RouteParams `json:"rotas"`
}

type Filter struct {
	ClientID  string
	CourierID string
	Status    Status
}

// CourierRef identifies the courier assigned to a request.
type CourierRef struct {
	ID     string `json:"id"`
	Name   string `json:"nome"`
	Avatar string `json:"avatar"`
}

// Details carries the data that accompanies a status change.
type Details struct {
	Justification  string              `json:"justificativa"`
	Courier        *CourierRef         `json:"entregador"`
	Reconciliation reconciliation.Data `json:"conciliacao"`
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Request, error) {
	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Request, 0, len(requests))

	for _, r := range requests {
		if filter.ClientID != "" && r.ClientID != filter.ClientID {
			continue
		}

		if filter.CourierID != "" && r.CourierID != filter.CourierID {
			continue
		}

		if filter.Status != "" && r.Status != filter.Status {
			continue
		}

		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b *Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

// Get returns the request with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Request, error) {
	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(requests, id); i >= 0 {
		return requests[i], nil
	}

	return nil, nil
}

// Create registers a new request. Requests submitted by an admin start accepted,
// client submissions start pending.
func (s *Service) Create(ctx context.Context, params CreateParams, byAdmin bool) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	routes, err := s.buildRoutes(ctx, params.Routes, nil)
	if err != nil {
		return nil, err
	}

	status := StatusPending
	if byAdmin {
		status = StatusAccepted
	}

	req := &Request{
		ID:                   uuid.NewString(),
		Code:                 nextCode(requests),
		ClientID:             params.ClientID,
		ClientName:           params.ClientName,
		ClientAvatar:         params.ClientAvatar,
		Status:               status,
		CreatedAt:            s.now(),
		OperationType:        params.OperationType,
		OperationDescription: params.OperationDescription,
		PickupPoint:          params.PickupPoint,
		Routes:               routes,
	}
	req.recalculate()

	if err := s.repo.Save(ctx, append([]*Request{req}, requests...)); err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return req, nil
}

// Update edits a request's operation data and routes. Unknown ids are ignored.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(requests, id)
	if i < 0 {
		return nil, nil
	}

	req := requests[i]

	if params.OperationType != nil {
		req.OperationType = *params.OperationType
	}

	if params.OperationDescription != nil {
		req.OperationDescription = *params.OperationDescription
	}

	if params.PickupPoint != nil {
		req.PickupPoint = *params.PickupPoint
	}

	if params.Routes != nil {
		if req.Locked() {
			return nil, fmt.Errorf("updating request %s: %w", req.Code, ErrLocked)
		}

		routes, err := s.buildRoutes(ctx, params.Routes, req.Routes)
		if err != nil {
			return nil, err
		}

		req.Routes = routes
		req.recalculate()
	}

	if err := s.repo.Save(ctx, requests); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}

	return req, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(requests, id)
	if i < 0 {
		return nil
	}

	return s.repo.Save(ctx, slices.Delete(requests, i, i+1))
}

// SaveReconciliation stores the payments recorded for the request's routes.
func (s *Service) SaveReconciliation(ctx context.Context, id string, data reconciliation.Data) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(requests, id)
	if i < 0 {
		return nil, nil
	}

	req := requests[i]
	if req.Status.Terminal() {
		return nil, fmt.Errorf("reconciling request %s: %w", req.Code, ErrLocked)
	}

	req.Reconciliation = data

	if err := s.repo.Save(ctx, requests); err != nil {
		return nil, fmt.Errorf("saving reconciliation: %w", err)
	}

	return req, nil
}

// UpdateStatus moves a request to a new status, applying the courier and
// reconciliation in the same write. Unknown ids are ignored.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, details Details) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(requests, id)
	if i < 0 {
		return nil, nil
	}

	req := requests[i]

	if !CanTransition(req.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", req.Status, status, ErrInvalidTransition)
	}

	justification := strings.TrimSpace(details.Justification)
	if status.NeedsJustification() && justification == "" {
		return nil, fmt.Errorf("%s: %w", status, ErrJustificationRequired)
	}

	req.Status = status

	if justification != "" {
		req.Justification = justification
	}

	if c := details.Courier; c != nil {
		req.CourierID = c.ID
		req.CourierName = c.Name
		req.CourierAvatar = c.Avatar
	}

	if details.Reconciliation != nil {
		req.Reconciliation = details.Reconciliation
	}

	if err := s.repo.Save(ctx, requests); err != nil {
		return nil, fmt.Errorf("updating request status: %w", err)
	}

	return req, nil
}

// buildRoutes assigns ids and fees. A route that keeps its id and destination
// keeps the fee it was created with.
func (s *Service) buildRoutes(ctx context.Context, params []RouteParams, existing []Route) ([]Route, error) {
	routes := make([]Route, 0, len(params))

	for _, p := range params {
		rt := Route{
			ID:                  p.ID,
			NeighborhoodID:      p.NeighborhoodID,
			Responsible:         p.Responsible,
			Phone:               p.Phone,
			Notes:               p.Notes,
			Extra:               p.Extra,
			CollectFromCustomer: p.CollectFromCustomer,
			PaymentMethodIDs:    p.PaymentMethodIDs,
			Status:              RoutePending,
		}

		if rt.ID == "" {
			rt.ID = uuid.NewString()
		}

		if rt.Extra.IsNegative() {
			rt.Extra = decimal.Zero
		}

		if prev := findRoute(existing, rt.ID); prev != nil && prev.NeighborhoodID == rt.NeighborhoodID {
			rt.Fee = prev.Fee
			rt.Status = prev.Status
			routes = append(routes, rt)

			continue
		}

		n, err := s.neighborhoods.Neighborhood(ctx, p.NeighborhoodID)
		if err != nil {
			return nil, fmt.Errorf("looking up neighborhood: %w", err)
		}

		if n == nil {
			return nil, fmt.Errorf("neighborhood %q: %w", p.NeighborhoodID, ErrUnknownNeighborhood)
		}

		rt.Fee = n.Fee
		routes = append(routes, rt)
	}

	return routes, nil
}

func findRoute(routes []Route, id string) *Route {
	for i := range routes {
		if routes[i].ID == id {
			return &routes[i]
		}
	}

	return nil
}

func indexOf(requests []*Request, id string) int {
	return slices.IndexFunc(requests, func(r *Request) bool { return r.ID == id })
}

// nextCode returns the code after the highest one issued so far.
func nextCode(requests []*Request) string {
	highest := 0

	for _, r := range requests {
		n, err := strconv.Atoi(strings.TrimPrefix(r.Code, codePrefix))
		if err != nil {
			continue
		}

		highest = max(highest, n-codeBase)
	}

	return codePrefix + strconv.Itoa(codeBase+highest+1)
}
