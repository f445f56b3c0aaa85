package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	"github.com/MrJamesThe3rd/levaetras/internal/reconciliation"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
	"github.com/MrJamesThe3rd/levaetras/internal/storage"
)

var rates = map[string]string{
	"copacabana": "10.00",
	"tijuca":     "15.00",
	"barra":      "25.50",
}

func newService(t *testing.T) *delivery.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	lookup := delivery.NewMockNeighborhoodLookup(ctrl)
	lookup.EXPECT().Neighborhood(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (*settings.Neighborhood, error) {
			fee, ok := rates[id]
			if !ok {
				return nil, nil
			}

			return &settings.Neighborhood{ID: id, Name: id, Fee: decimal.RequireFromString(fee)}, nil
		}).AnyTimes()

	repo := storage.NewCollection(storage.NewMemory(), storage.KeyRequests, func() []*delivery.Request { return nil })

	return delivery.NewService(repo, lookup)
}

func twoRoutes() delivery.CreateParams {
	return delivery.CreateParams{
		ClientID:      "client-1",
		ClientName:    "Padaria Pão Quente",
		OperationType: "coleta",
		PickupPoint:   "Av. Atlântica, 1702",
		Routes: []delivery.RouteParams{
			{NeighborhoodID: "copacabana", Responsible: "Maria"},
			{NeighborhoodID: "tijuca", Responsible: "João", Extra: decimal.RequireFromString("50")},
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.Create(ctx, twoRoutes(), true)
	require.NoError(t, err)

	assert.Equal(t, "SOL-1001", first.Code)
	assert.Equal(t, delivery.StatusAccepted, first.Status)
	assert.True(t, first.TotalFee.Equal(decimal.RequireFromString("25")), first.TotalFee.String())
	assert.True(t, first.TotalPassthrough.Equal(decimal.RequireFromString("50")), first.TotalPassthrough.String())

	for _, rt := range first.Routes {
		assert.NotEmpty(t, rt.ID)
		assert.Equal(t, delivery.RoutePending, rt.Status)
	}

	second, err := svc.Create(ctx, twoRoutes(), false)
	require.NoError(t, err)
	assert.Equal(t, "SOL-1002", second.Code)
	assert.Equal(t, delivery.StatusPending, second.Status)

	require.NoError(t, svc.Delete(ctx, first.ID))

	third, err := svc.Create(ctx, twoRoutes(), false)
	require.NoError(t, err)
	assert.Equal(t, "SOL-1003", third.Code, "codes are never reused")

	list, err := svc.List(ctx, delivery.Filter{Status: delivery.StatusPending})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_Create_UnknownNeighborhood(t *testing.T) {
	svc := newService(t)

	params := twoRoutes()
	params.Routes[0].NeighborhoodID = "atlantis"

	_, err := svc.Create(context.Background(), params, true)
	assert.ErrorIs(t, err, delivery.ErrUnknownNeighborhood)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	req, err := svc.Create(ctx, twoRoutes(), true)
	require.NoError(t, err)

	routes := []delivery.RouteParams{
		{ID: req.Routes[0].ID, NeighborhoodID: "copacabana", Responsible: "Maria"},
		{NeighborhoodID: "barra", Responsible: "Pedro"},
	}

	updated, err := svc.Update(ctx, req.ID, delivery.UpdateParams{Routes: routes})
	require.NoError(t, err)
	require.Len(t, updated.Routes, 2)
	assert.Equal(t, req.Routes[0].ID, updated.Routes[0].ID)
	assert.True(t, updated.TotalFee.Equal(decimal.RequireFromString("35.50")), updated.TotalFee.String())
	assert.True(t, updated.TotalPassthrough.IsZero())

	missing, err := svc.Update(ctx, "nope", delivery.UpdateParams{Routes: routes})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.SaveReconciliation(ctx, req.ID, reconciliation.Data{req.Routes[0].ID: {}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, req.ID, delivery.UpdateParams{Routes: routes})
	assert.ErrorIs(t, err, delivery.ErrLocked)

	pickup := "Rua Nova, 10"
	updated, err = svc.Update(ctx, req.ID, delivery.UpdateParams{PickupPoint: &pickup})
	require.NoError(t, err)
	assert.Equal(t, pickup, updated.PickupPoint)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		byAdmin bool
		path    []delivery.Status
		details delivery.Details
		wantErr error
	}{
		{
			name:    "full lifecycle",
			byAdmin: false,
			path:    []delivery.Status{delivery.StatusAccepted, delivery.StatusInProgress, delivery.StatusConcluded},
		},
		{
			name:    "skip in progress",
			byAdmin: true,
			path:    []delivery.Status{delivery.StatusConcluded},
			wantErr: delivery.ErrInvalidTransition,
		},
		{
			name:    "reject accepted",
			byAdmin: true,
			path:    []delivery.Status{delivery.StatusRejected},
			details: delivery.Details{Justification: "fora da área"},
			wantErr: delivery.ErrInvalidTransition,
		},
		{
			name:    "reject pending",
			byAdmin: false,
			path:    []delivery.Status{delivery.StatusRejected},
			details: delivery.Details{Justification: "fora da área"},
		},
		{
			name:    "cancel without justification",
			byAdmin: true,
			path:    []delivery.Status{delivery.StatusCancelled},
			details: delivery.Details{Justification: "   "},
			wantErr: delivery.ErrJustificationRequired,
		},
		{
			name:    "cancel in progress",
			byAdmin: true,
			path:    []delivery.Status{delivery.StatusInProgress, delivery.StatusCancelled},
			details: delivery.Details{Justification: "cliente desistiu"},
			wantErr: delivery.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newService(t)

			req, err := svc.Create(ctx, twoRoutes(), tt.byAdmin)
			require.NoError(t, err)

			for _, status := range tt.path {
				req, err = svc.UpdateStatus(ctx, req.ID, status, tt.details)
				if err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.path[len(tt.path)-1], req.Status)
		})
	}
}

func TestService_UpdateStatus_AssignsCourier(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	req, err := svc.Create(ctx, twoRoutes(), true)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, req.ID, delivery.StatusInProgress, delivery.Details{
		Courier: &delivery.CourierRef{ID: "entregador-1", Name: "Ana Silva"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusInProgress, got.Status)
	assert.Equal(t, "entregador-1", got.CourierID)
	assert.Equal(t, "Ana Silva", got.CourierName)

	byCourier, err := svc.List(ctx, delivery.Filter{CourierID: "entregador-1"})
	require.NoError(t, err)
	assert.Len(t, byCourier, 1)

	missing, err := svc.UpdateStatus(ctx, "nope", delivery.StatusConcluded, delivery.Details{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRequest_Dues(t *testing.T) {
	svc := newService(t)

	req, err := svc.Create(context.Background(), twoRoutes(), true)
	require.NoError(t, err)

	dues := req.Dues()
	require.Len(t, dues, 2)
	assert.Equal(t, req.Routes[1].ID, dues[1].RouteID)
	assert.True(t, dues[1].Passthrough.Equal(decimal.RequireFromString("50")))
	assert.False(t, req.Locked())
}

func TestService_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := delivery.NewMockRepository(ctrl)
	lookup := delivery.NewMockNeighborhoodLookup(ctrl)

	repo.EXPECT().Load(gomock.Any()).Return([]*delivery.Request{{ID: "r1", Code: "SOL-1001", Status: delivery.StatusPending}}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := delivery.NewService(repo, lookup)

	_, err := svc.UpdateStatus(context.Background(), "r1", delivery.StatusAccepted, delivery.Details{})
	assert.ErrorContains(t, err, "disk full")
}
