package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStorage(RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStorage_SetGetDelete(t *testing.T) {
	s, mr := newTestStorage(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("abc", []byte("3,7"), time.Hour))
	assert.True(t, mr.Exists("test:abc"))

	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("3,7"), got)

	require.NoError(t, s.Delete("abc"))
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorage_Expiry(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("cart", []byte("1"), time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := s.Get("cart")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorage_ResetKeepsForeignKeys(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, s.Reset())
	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewRedisStorage_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStorage(RedisConfig{Addr: addr})
	assert.Error(t, err)
}
