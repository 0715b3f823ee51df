package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	in := []record{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "second"},
		{ID: "c", Name: "third"},
	}
	require.NoError(t, store.Write(ctx, "records", in))

	var out []record
	require.NoError(t, store.Read(ctx, "records", &out))
	assert.Equal(t, in, out, "read must return what was written, in order")
}

func TestFileStore_MissingCollectionReadsEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []record
	require.NoError(t, store.Read(context.Background(), "never-written", &out))
	assert.Empty(t, out)
}

func TestFileStore_WriteReplacesWholeCollection(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "records", []record{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, store.Write(ctx, "records", []record{{ID: "c"}}))

	var out []record
	require.NoError(t, store.Read(ctx, "records", &out))
	assert.Equal(t, []record{{ID: "c"}}, out)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []record{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}
	require.NoError(t, store.Write(ctx, "records", in))

	var out []record
	require.NoError(t, store.Read(ctx, "records", &out))
	assert.Equal(t, in, out)
}

func TestMemoryStore_ReadHandsBackCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "records", []record{{ID: "a", Name: "original"}}))

	var first []record
	require.NoError(t, store.Read(ctx, "records", &first))
	first[0].Name = "mutated"

	var second []record
	require.NoError(t, store.Read(ctx, "records", &second))
	assert.Equal(t, "original", second[0].Name)
}
