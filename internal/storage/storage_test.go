package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/levaetras/internal/storage"
)

type record struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

func TestCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	col := storage.NewCollection[record](mem, "records", nil)

	date := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, col.Save(ctx, []record{{ID: "a", Date: date}}))

	got, err := col.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.True(t, date.Equal(got[0].Date))
}

func TestCollection_MissingKeyUsesSeed(t *testing.T) {
	col := storage.NewCollection(storage.NewMemory(), "records", func() []record {
		return []record{{ID: "seeded"}}
	})

	got, err := col.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "seeded", got[0].ID)
}

func TestCollection_MalformedJSONFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, "records", []byte("{not json")))

	col := storage.NewCollection[record](mem, "records", nil)

	got, err := col.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollection_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	col := storage.NewCollection[record](mem, "records", nil)

	require.NoError(t, col.Save(ctx, nil))

	raw, ok, err := mem.Get(ctx, "records")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, "[]", string(raw))
}

func TestCollection_BackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := storage.NewMockBackend(ctrl)
	backend.EXPECT().Get(gomock.Any(), "records").Return(nil, false, errors.New("connection refused"))
	backend.EXPECT().Set(gomock.Any(), "records", gomock.Any()).Return(errors.New("connection refused"))

	col := storage.NewCollection[record](backend, "records", nil)

	_, err := col.Load(context.Background())
	assert.Error(t, err)

	err = col.Save(context.Background(), []record{{ID: "a"}})
	assert.Error(t, err)
}

func TestCollection_SeedIsPersisted(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	calls := 0
	col := storage.NewCollection(mem, "records", func() []record {
		calls++
		return []record{{ID: "seeded"}}
	})

	_, err := col.Load(ctx)
	require.NoError(t, err)

	_, err = col.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
