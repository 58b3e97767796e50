package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, `*[_type == "startPage"][0]`, []byte(`{"title":"one"}`)))
	require.NoError(t, s.Put(ctx, `*[_type == "startPage"][0]`, []byte(`{"title":"two"}`)))

	body, at, err := s.Get(ctx, `*[_type == "startPage"][0]`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"two"}`, string(body))
	assert.True(t, fixed.Equal(at))
}

func TestGetMiss(t *testing.T) {
	s := openTemp(t)
	_, _, err := s.Get(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrMiss)
}

func TestNilStore(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Put(context.Background(), "q", []byte("x")))
	_, _, err := s.Get(context.Background(), "q")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, s.Close())
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}
