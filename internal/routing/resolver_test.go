package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/routing"
)

type mockLookup struct {
	lookupFunc func(ctx context.Context, hostname string) (string, error)
	calls      int
}

func (m *mockLookup) LookupDomain(ctx context.Context, hostname string) (string, error) {
	m.calls++
	return m.lookupFunc(ctx, hostname)
}

type mockCache struct {
	entries  map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func (m *mockCache) Get(_ context.Context, hostname string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	u, ok := m.entries[hostname]
	return u, ok, nil
}

func (m *mockCache) Set(_ context.Context, hostname, username string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[hostname] = username
	return nil
}

func TestCachedResolver_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("cache_hit_skips_directory", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("should not be called")
		}}
		cache := &mockCache{entries: map[string]string{"alice.dev": "alice"}}

		r := routing.NewCachedResolver(dir, cache)
		username, err := r.Lookup(context.Background(), "alice.dev")

		require.NoError(t, err)
		assert.Equal(t, "alice", username)
		assert.Zero(t, dir.calls)
	})

	t.Run("cache_miss_falls_through_and_populates", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, hostname string) (string, error) {
			assert.Equal(t, "alice.dev", hostname)
			return "alice", nil
		}}
		cache := &mockCache{}

		r := routing.NewCachedResolver(dir, cache)
		username, err := r.Lookup(context.Background(), "alice.dev")

		require.NoError(t, err)
		assert.Equal(t, "alice", username)
		assert.Equal(t, 1, dir.calls)
		assert.Equal(t, "alice", cache.entries["alice.dev"])
	})

	t.Run("cache_error_degrades_to_directory", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, _ string) (string, error) {
			return "alice", nil
		}}
		cache := &mockCache{getErr: errors.New("redis: connection refused")}

		r := routing.NewCachedResolver(dir, cache)
		username, err := r.Lookup(context.Background(), "alice.dev")

		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("cache_write_error_does_not_fail_lookup", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, _ string) (string, error) {
			return "alice", nil
		}}
		cache := &mockCache{setErr: errors.New("redis: connection refused")}

		r := routing.NewCachedResolver(dir, cache)
		username, err := r.Lookup(context.Background(), "alice.dev")

		require.NoError(t, err)
		assert.Equal(t, "alice", username)
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("unknown_host_returns_not_found", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, _ string) (string, error) {
			return "", domain.ErrNotFound
		}}

		r := routing.NewCachedResolver(dir, nil)
		_, err := r.Lookup(context.Background(), "unknown.tld")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("nil_cache_goes_straight_to_directory", func(t *testing.T) {
		t.Parallel()

		dir := &mockLookup{lookupFunc: func(_ context.Context, _ string) (string, error) {
			return "alice", nil
		}}

		r := routing.NewCachedResolver(dir, nil)
		username, err := r.Lookup(context.Background(), "alice.dev")

		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})
}
