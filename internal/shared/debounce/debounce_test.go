package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quiet = 30 * time.Millisecond

func TestDo_KeepsOnlyLastTask(t *testing.T) {
	d := New(quiet)
	defer d.Stop()

	var (
		mu    sync.Mutex
		calls []string
	)
	record := func(v string) func() {
		return func() {
			mu.Lock()
			calls = append(calls, v)
			mu.Unlock()
		}
	}

	d.Do("slug", record("a"))
	d.Do("slug", record("ab"))
	d.Do("slug", record("abc"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	// give a superseded timer the chance to misfire
	time.Sleep(3 * quiet)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"abc"}, calls)
	assert.False(t, d.Pending("slug"))
}

func TestDo_KeysAreIndependent(t *testing.T) {
	d := New(quiet)
	defer d.Stop()

	var slug, title atomic.Int32
	d.Do("slug", func() { slug.Add(1) })
	d.Do("title", func() { title.Add(1) })

	require.Eventually(t, func() bool {
		return slug.Load() == 1 && title.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCancel(t *testing.T) {
	d := New(quiet)
	defer d.Stop()

	var fired atomic.Bool
	d.Do("slug", func() { fired.Store(true) })
	assert.True(t, d.Pending("slug"))
	assert.True(t, d.Cancel("slug"))
	assert.False(t, d.Cancel("slug"))

	time.Sleep(3 * quiet)
	assert.False(t, fired.Load())
}

func TestStop_PreventsFiringAndRejectsNewWork(t *testing.T) {
	d := New(quiet)

	var fired atomic.Bool
	d.Do("slug", func() { fired.Store(true) })
	d.Stop()

	assert.False(t, d.Do("slug", func() { fired.Store(true) }))

	time.Sleep(3 * quiet)
	assert.False(t, fired.Load())
	assert.False(t, d.Pending("slug"))
}
