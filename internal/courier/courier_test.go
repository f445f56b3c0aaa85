package courier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/levaetras/internal/courier"
	"github.com/MrJamesThe3rd/levaetras/internal/storage"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := courier.NewService(storage.NewCollection(storage.NewMemory(), storage.KeyCouriers, courier.Seed))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	created, err := svc.Create(ctx, courier.Courier{Name: "João Lima", Vehicle: "Bicicleta"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	created.Name = "João P. Lima"
	require.NoError(t, svc.Update(ctx, created))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "João P. Lima", got.Name)
	assert.Contains(t, got.Avatar, "seed=Jo")

	require.NoError(t, svc.Delete(ctx, "entregador-1"))

	missing, err := svc.Get(ctx, "entregador-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
