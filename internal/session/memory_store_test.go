package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var testOwner = Owner{Kind: OwnerUser, ID: "7f1c3a8e-0000-4000-8000-000000000001", Username: "ivan"}

func TestMemoryStoreCreateThenLookup(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	created, err := store.Create(ctx, testOwner, 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)

	got, err := store.Lookup(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, testOwner, got.Owner)
	assert.Equal(t, clock.Now(), got.CreatedAt)
	assert.Equal(t, clock.Now().Add(30*time.Minute), got.ExpiresAt)
}

func TestMemoryStoreLookupIgnoresExpiry(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	created, err := store.Create(ctx, testOwner, time.Second)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	got, err := store.Lookup(ctx, created.Token)
	require.NoError(t, err)
	assert.False(t, got.ValidAt(clock.Now()))
}

func TestMemoryStoreLookupMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreRemoveIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	keep, err := store.Create(ctx, testOwner, time.Hour)
	require.NoError(t, err)
	drop, err := store.Create(ctx, testOwner, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, drop.Token))
	assert.Equal(t, 1, store.Len())
	require.NoError(t, store.Remove(ctx, drop.Token))
	assert.Equal(t, 1, store.Len())

	_, err = store.Lookup(ctx, keep.Token)
	assert.NoError(t, err)
	_, err = store.Lookup(ctx, drop.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreSweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	short, err := store.Create(ctx, testOwner, time.Minute)
	require.NoError(t, err)
	edge, err := store.Create(ctx, testOwner, 5*time.Minute)
	require.NoError(t, err)
	long, err := store.Create(ctx, testOwner, 10*time.Minute)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	removed, err := store.Sweep(ctx, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Lookup(ctx, short.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Lookup(ctx, edge.Token)
	assert.NoError(t, err, "entry expiring exactly now is left for the authenticator")
	_, err = store.Lookup(ctx, long.Token)
	assert.NoError(t, err)

	removed, err = store.Sweep(ctx, clock.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreConcurrentCreate(t *testing.T) {
	const callers = 200
	store := NewMemoryStore()
	ctx := context.Background()

	tokens := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := store.Create(ctx, testOwner, time.Hour)
			if err == nil {
				tokens <- sess.Token
			}
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]struct{}, callers)
	for tok := range tokens {
		seen[tok] = struct{}{}
	}
	assert.Len(t, seen, callers)
	assert.Equal(t, callers, store.Len())
}

func TestMemoryStoreSweepDuringCreate(t *testing.T) {
	const callers = 100
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Create(ctx, testOwner, time.Hour)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Sweep(ctx, time.Now())
		}()
	}
	wg.Wait()

	assert.Equal(t, callers, store.Len())
}

func TestMemoryStoreRejectsNonPositiveTTL(t *testing.T) {
	store := NewMemoryStore()
	for _, ttl := range []time.Duration{0, -time.Second} {
		_, err := store.Create(context.Background(), testOwner, ttl)
		assert.ErrorIs(t, err, ErrInvalidTTL)
	}
	assert.Zero(t, store.Len())
}

func TestMemoryStoreRemoveOwner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	admin := Owner{Kind: OwnerAdmin, ID: testOwner.ID, Username: "admin"}

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, testOwner, time.Hour)
		require.NoError(t, err)
	}
	kept, err := store.Create(ctx, admin, time.Hour)
	require.NoError(t, err)

	removed, err := store.RemoveOwner(ctx, OwnerUser, testOwner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, store.Len())
	_, err = store.Lookup(ctx, kept.Token)
	assert.NoError(t, err)

	removed, err = store.RemoveOwner(ctx, OwnerUser, testOwner.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
