package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	type row struct {
		Name string `json:"name"`
	}
	require.NoError(t, store.Save(ctx, "things:r1", []row{{Name: "a"}, {Name: "b"}}))

	var got []row
	require.NoError(t, store.Load(ctx, "things:r1", &got))
	assert.Equal(t, []row{{Name: "a"}, {Name: "b"}}, got)
}

func TestFileStoreMissingKeyKeepsDefault(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	got := []string{"default"}
	require.NoError(t, store.Load(context.Background(), "absent", &got))
	assert.Equal(t, []string{"default"}, got)
}

func TestFileStoreCorruptValueKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	got := []string{"default"}
	require.NoError(t, store.Load(context.Background(), "broken", &got))
	assert.Equal(t, []string{"default"}, got, "corrupt value falls back to the caller's default")
}

func TestFileStoreTypeMismatchKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	// Valid JSON whose second element fails the target type: the decoder
	// errors mid-value, and nothing of the partial decode may leak out.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mixed.json"), []byte(`["a", 3]`), 0o644))

	got := []string{"default"}
	require.NoError(t, store.Load(context.Background(), "mixed", &got))
	assert.Equal(t, []string{"default"}, got, "partial decode must not reach the destination")
}

func TestFileStoreLastWriterWins(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []int{1}))
	require.NoError(t, store.Save(ctx, "k", []int{2, 3}))

	var got []int
	require.NoError(t, store.Load(ctx, "k", &got))
	assert.Equal(t, []int{2, 3}, got)
}
