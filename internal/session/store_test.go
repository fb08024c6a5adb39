package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_GetOrCreate(t *testing.T) {
	store := NewStore(time.Hour, time.Minute, zap.NewNop())

	first := store.GetOrCreate("abc")
	require.NotNil(t, first)
	assert.Equal(t, "abc", first.ID())
	assert.Equal(t, State{}, first.Snapshot())

	assert.Same(t, first, store.GetOrCreate("abc"))
	assert.NotSame(t, first, store.GetOrCreate("def"))
	assert.Equal(t, 2, store.Count())
}

func TestStore_ConcurrentCreateYieldsOneSession(t *testing.T) {
	store := NewStore(time.Hour, time.Minute, zap.NewNop())

	const workers = 32
	got := make([]*Session, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = store.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestStore_DeleteAndMissing(t *testing.T) {
	store := NewStore(time.Hour, time.Minute, zap.NewNop())

	_, ok := store.Get("nope")
	assert.False(t, ok)

	store.GetOrCreate("x")
	store.Delete("x")
	_, ok = store.Get("x")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(50*time.Millisecond, 10*time.Millisecond, zap.NewNop())
	store.GetOrCreate("short")

	// Count does not touch entries, so polling it does not extend their life
	assert.Eventually(t, func() bool {
		return store.Count() == 0
	}, time.Second, 10*time.Millisecond)
}
