package modifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/McCollisters/autovista-api-sub002/internal/modifier"
	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

type stubSource struct {
	global      *pricing.ModifierSet
	override    *pricing.ModifierSet
	globalCalls int
}

func (s *stubSource) Global(context.Context) (*pricing.ModifierSet, error) {
	s.globalCalls++
	if s.global == nil {
		return nil, pricing.ErrMissingGlobalModifiers
	}
	return s.global, nil
}

func (s *stubSource) ForPortal(context.Context, uuid.UUID) (*pricing.ModifierSet, error) {
	if s.override == nil {
		return nil, modifier.ErrNoPortalOverride
	}
	return s.override, nil
}

func TestResolverCachesPerPortal(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	source := &stubSource{
		global:   &pricing.ModifierSet{IsGlobal: true, Fuel: pricing.Value{Value: 50, ValueType: pricing.Flat}},
		override: &pricing.ModifierSet{Fuel: pricing.Value{Value: 75, ValueType: pricing.Flat}},
	}
	resolver := &modifier.Resolver{
		Store: source,
		Cache: modifier.NewCache(rdb, time.Minute),
	}

	portalID := uuid.New()
	first, err := resolver.Resolve(context.Background(), &portalID)
	require.NoError(t, err)
	require.Equal(t, float64(75), first.Fuel.Value)

	second, err := resolver.Resolve(context.Background(), &portalID)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, source.globalCalls)
}

func TestResolverMissingGlobalIsFatal(t *testing.T) {
	resolver := &modifier.Resolver{Store: &stubSource{}}
	_, err := resolver.Resolve(context.Background(), nil)
	require.ErrorIs(t, err, pricing.ErrMissingGlobalModifiers)
}

func TestResolverWithoutOverrideUsesGlobal(t *testing.T) {
	source := &stubSource{
		global: &pricing.ModifierSet{IsGlobal: true, Fuel: pricing.Value{Value: 50, ValueType: pricing.Flat}},
	}
	resolver := &modifier.Resolver{Store: source}

	portalID := uuid.New()
	resolved, err := resolver.Resolve(context.Background(), &portalID)
	require.NoError(t, err)
	require.Equal(t, float64(50), resolved.Fuel.Value)
}
