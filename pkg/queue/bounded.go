package queue

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Bounded is a fixed-capacity circular FIFO queue with blocking Put and Take.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	slots    []Item[T]
	head     int
	tail     int
	count    int
	capacity int

	ended  bool
	closed bool
}

// New creates a queue able to hold capacity items.
func New[T any](capacity int) (*Bounded[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
	}

	q := &Bounded[T]{
		slots:    make([]Item[T], capacity),
		capacity: capacity,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)

	return q, nil
}

// Put appends v to the queue. It blocks while the queue is full.
func (q *Bounded[T]) Put(v T) error {
	return q.put(Item[T]{Value: v})
}

// PutEndOfStream appends the end-of-stream marker. It blocks while the queue is full.
// Nothing can be put after it.
func (q *Bounded[T]) PutEndOfStream() error {
	return q.put(Item[T]{end: true})
}

func (q *Bounded[T]) put(it Item[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkInvariant()

	if q.ended {
		return ErrStreamEnded
	}

	for !q.closed && q.count == q.capacity {
		q.notFull.Wait()
	}

	if q.closed {
		return ErrClosed
	}

	q.slots[q.tail] = it
	q.tail = (q.tail + 1) % q.capacity
	q.count++

	if it.end {
		q.ended = true
	}

	q.notEmpty.Signal()

	return nil
}

// Take removes and returns the oldest item. It blocks while the queue is empty.
func (q *Bounded[T]) Take() (Item[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkInvariant()

	for !q.closed && q.count == 0 {
		q.notEmpty.Wait()
	}

	if q.closed {
		return Item[T]{}, ErrClosed
	}

	it := q.slots[q.head]
	// release the reference held by the slot
	q.slots[q.head] = Item[T]{}
	q.head = (q.head + 1) % q.capacity
	q.count--

	q.notFull.Signal()

	return it, nil
}

// Close aborts the queue. Blocked and future calls to Put and Take return ErrClosed.
func (q *Bounded[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of items currently in the queue.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.count
}

// Cap returns the capacity of the queue.
func (q *Bounded[T]) Cap() int {
	return q.capacity
}

// checkInvariant must be called with the lock held.
// A broken invariant means a synchronisation bug, not a data problem.
func (q *Bounded[T]) checkInvariant() {
	if q.count < 0 || q.count > q.capacity ||
		q.head < 0 || q.head >= q.capacity ||
		q.tail < 0 || q.tail >= q.capacity {
		panic(fmt.Sprintf("queue: broken invariant: count=%d head=%d tail=%d capacity=%d",
			q.count, q.head, q.tail, q.capacity))
	}
}
