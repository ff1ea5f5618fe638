package queue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/pipegrep/pkg/queue"
)

func TestNewInvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1, -100} {
		_, err := queue.New[string](capacity)
		require.ErrorIs(t, err, queue.ErrInvalidCapacity)
	}
}

func TestFIFO(t *testing.T) {
	t.Parallel()

	q, err := queue.New[string](3)
	require.NoError(t, err)

	require.NoError(t, q.Put("a"))
	require.NoError(t, q.Put("b"))
	require.NoError(t, q.Put("c"))
	assert.Equal(t, 3, q.Len())

	got := []string{}
	for range 3 {
		it, err := q.Take()
		require.NoError(t, err)
		assert.False(t, it.End())
		got = append(got, it.Value)
	}

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, q.Len())
}

func TestEndOfStream(t *testing.T) {
	t.Parallel()

	q, err := queue.New[string](2)
	require.NoError(t, err)

	// a value equal to the old magic token is plain data
	require.NoError(t, q.Put("done"))
	require.NoError(t, q.PutEndOfStream())
	require.ErrorIs(t, q.Put("late"), queue.ErrStreamEnded)
	require.ErrorIs(t, q.PutEndOfStream(), queue.ErrStreamEnded)

	it, err := q.Take()
	require.NoError(t, err)
	assert.False(t, it.End())
	assert.Equal(t, "done", it.Value)

	it, err = q.Take()
	require.NoError(t, err)
	assert.True(t, it.End())
}

func TestPutBlocksWhenFull(t *testing.T) {
	t.Parallel()

	q, err := queue.New[int](1)
	require.NoError(t, err)
	require.NoError(t, q.Put(1))

	done := make(chan struct{})

	go func() {
		defer close(done)
		assert.NoError(t, q.Put(2))
	}()

	select {
	case <-done:
		t.Fatal("put should block on a full queue")
	case <-time.After(50 * time.Millisecond):
	}

	it, err := q.Take()
	require.NoError(t, err)
	assert.Equal(t, 1, it.Value)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("put did not resume after take")
	}

	it, err = q.Take()
	require.NoError(t, err)
	assert.Equal(t, 2, it.Value)
}

func TestTakeBlocksWhenEmpty(t *testing.T) {
	t.Parallel()

	q, err := queue.New[int](1)
	require.NoError(t, err)

	got := make(chan int, 1)

	go func() {
		it, err := q.Take()
		assert.NoError(t, err)
		got <- it.Value
	}()

	select {
	case <-got:
		t.Fatal("take should block on an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.Put(42))

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("take did not resume after put")
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		capacity int
		total    int
	}{
		"capacity 1":  {capacity: 1, total: 1000},
		"capacity 3":  {capacity: 3, total: 1000},
		"capacity 64": {capacity: 64, total: 5000},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			q, err := queue.New[int](tc.capacity)
			require.NoError(t, err)

			var wg sync.WaitGroup

			wg.Add(1)

			go func() {
				defer wg.Done()

				for i := range tc.total {
					assert.NoError(t, q.Put(i))
					assert.LessOrEqual(t, q.Len(), tc.capacity)
				}

				assert.NoError(t, q.PutEndOfStream())
			}()

			got := []int{}

			for {
				assert.LessOrEqual(t, q.Len(), tc.capacity)

				it, err := q.Take()
				require.NoError(t, err)

				if it.End() {
					break
				}

				got = append(got, it.Value)
			}

			wg.Wait()

			require.Len(t, got, tc.total)

			for i, v := range got {
				assert.Equal(t, i, v)
			}
		})
	}
}

func TestCloseWakesWaiters(t *testing.T) {
	t.Parallel()

	full, err := queue.New[int](1)
	require.NoError(t, err)
	require.NoError(t, full.Put(1))

	empty, err := queue.New[int](1)
	require.NoError(t, err)

	errs := make(chan error, 2)

	go func() {
		errs <- full.Put(2)
	}()

	go func() {
		_, err := empty.Take()
		errs <- err
	}()

	time.Sleep(20 * time.Millisecond)
	full.Close()
	empty.Close()
	// closing twice is harmless
	empty.Close()

	for range 2 {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, queue.ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("close did not wake the waiters")
		}
	}

	_, err = full.Take()
	require.ErrorIs(t, err, queue.ErrClosed)
	require.ErrorIs(t, empty.Put(3), queue.ErrClosed)
}
