package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "file:storetest?mode=memory&cache=shared")
	require.NoError(t, err)
	s.DB().SetMaxOpenConns(1)
	s.DB().SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = s.Metadata().Clear(context.Background())
		_ = s.Close()
	})
	return s
}

func TestMetadataGetMissingKey(t *testing.T) {
	s := setupStore(t)

	v, err := s.Metadata().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMetadataSetGetOverwrite(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	m := s.Metadata()

	require.NoError(t, m.Set(ctx, "k", []byte("v1")))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	require.NoError(t, m.Set(ctx, "k", []byte("v2")))
	v, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
}

func TestMetadataDelete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	m := s.Metadata()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	require.NoError(t, m.Delete(ctx, "k"))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	// deleting again is fine
	require.NoError(t, m.Delete(ctx, "k"))
}

func TestMetadataClear(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	m := s.Metadata()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	require.NoError(t, m.Clear(ctx))

	for _, k := range []string{"a", "b"} {
		v, err := m.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tokens := NewTokenStore(s)

	tok, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, tokens.Save(ctx, "jwt-value"))
	tok, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-value", tok)

	require.NoError(t, tokens.Clear(ctx))
	tok, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
