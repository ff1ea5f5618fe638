package queue

// Item is the content of one queue slot.
type Item[T any] struct {
	Value T
	end   bool
}

// End reports whether the item marks the end of the stream.
func (it Item[T]) End() bool {
	return it.end
}
