package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spesa/internal/storage"
)

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.bolt")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "k", []byte(`[{"id":"a"}]`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err = reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}
