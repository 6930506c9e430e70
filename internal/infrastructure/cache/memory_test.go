package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
)

func TestMemoryCache_GetSetExpira(t *testing.T) {
	c := NewMemoryCache()
	agora := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return agora }
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))

	agora = agora.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	for _, k := range []string{"t:a:estoque:1", "t:a:estoque:2", "t:a:entregas:rotas", "t:b:estoque:1"} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), 0))
	}

	require.NoError(t, c.DeletePrefix(ctx, "t:a:estoque:"))

	for k, existe := range map[string]bool{
		"t:a:estoque:1": false, "t:a:estoque:2": false,
		"t:a:entregas:rotas": true, "t:b:estoque:1": true,
	} {
		_, err := c.Get(ctx, k)
		if existe {
			assert.NoError(t, err, k)
		} else {
			assert.ErrorIs(t, err, ports.ErrCacheMiss, k)
		}
	}
}

func TestMemoryCache_SetNX(t *testing.T) {
	c := NewMemoryCache()
	agora := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return agora }
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "op:1", []byte("1"), time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "op:1", []byte("2"), time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	agora = agora.Add(2 * time.Hour)
	ok, err = c.SetNX(ctx, "op:1", []byte("3"), time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "chave expirada pode ser regravada")
}

func TestMemoryCache_JSONHelpers(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	type item struct{ Nome string }

	require.NoError(t, ports.SetJSON(ctx, c, "k", []item{{Nome: "arroz"}}, 0))
	var got []item
	found, err := ports.GetJSON(ctx, c, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "arroz", got[0].Nome)

	found, err = ports.GetJSON(ctx, c, "outra", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Cleanup(t *testing.T) {
	c := NewMemoryCache()
	agora := time.Now()
	c.now = func() time.Time { return agora }
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "b", []byte("1"), 0))

	agora = agora.Add(time.Minute)
	c.Cleanup()
	assert.Len(t, c.entries, 1)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `t:a\*b\?:`, escapeGlob("t:a*b?:"))
}
