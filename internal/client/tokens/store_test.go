package tokens

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBearer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "abc", want: "abc"},
		{in: "Bearer abc", want: "abc"},
		{in: "bearer abc", want: "abc"},
		{in: "BEARER   abc  ", want: "abc"},
		{in: "  Bearer abc", want: "abc"},
		{in: "Bearerabc", want: "Bearerabc"},
		{in: "", want: ""},
		{in: "Bearer ", want: "Bearer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBearer(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeBearer_Idempotent(t *testing.T) {
	once := NormalizeBearer("Bearer token-1")
	assert.Equal(t, once, NormalizeBearer(once))
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	access, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)

	require.NoError(t, s.SetTokens(ctx, "a1", "r1"))
	access, _ = s.AccessToken(ctx)
	refresh, _ := s.RefreshToken(ctx)
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)

	s.SetAccessToken("a2")
	access, _ = s.AccessToken(ctx)
	refresh, _ = s.RefreshToken(ctx)
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r1", refresh)

	require.NoError(t, s.Clear(ctx))
	access, _ = s.AccessToken(ctx)
	refresh, _ = s.RefreshToken(ctx)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestMemoryStore_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SetTokens(ctx, "a", "r")
			_, _ = s.AccessToken(ctx)
			_ = s.Clear(ctx)
		}()
	}
	wg.Wait()
}
