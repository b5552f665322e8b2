package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/pkg/config"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	in := dto.DashboardSummaryDTO{
		InventoryValue:    decimal.RequireFromString("1520.50"),
		ItemsBelowReorder: 3,
		PurchaseOrders:    dto.StatsResponse{Total: 5, ByStatus: map[string]int{"draft": 2}},
	}
	require.NoError(t, c.Set(ctx, "dashboard:c1", in, time.Minute))
	assert.True(t, mr.Exists("supplychain:dashboard:c1"))

	var out dto.DashboardSummaryDTO
	found, err := c.Get(ctx, "dashboard:c1", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, out.InventoryValue.Equal(in.InventoryValue))
	assert.Equal(t, 2, out.PurchaseOrders.ByStatus["draft"])
}

func TestRedisCache_MissYExpiracion(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var out map[string]int
	found, err := c.Get(ctx, "nada", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Second))
	mr.FastForward(2 * time.Second)
	found, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_EntradaCorruptaYDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("supplychain:roto", "{no-json"))

	var out map[string]int
	found, err := c.Get(ctx, "roto", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("supplychain:roto"))

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("supplychain:a"))
	assert.NoError(t, c.Delete(ctx))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
