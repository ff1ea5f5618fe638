// Package queue provides a bounded, blocking FIFO queue used to connect two pipeline stages.
//
// A Bounded queue is a fixed-capacity circular buffer guarded by a single mutex and two condition
// variables. Producers block in Put while the queue is full and consumers block in Take while it is
// empty. Waiting goroutines release the lock while suspended, so there is no busy waiting.
//
// The end of a stream is signalled with PutEndOfStream rather than a reserved value: every slot
// carries its own end-of-stream tag, so no data item can ever be mistaken for the terminator.
//
// A queue is meant to be shared by exactly one producer and one consumer. Close aborts the queue and
// wakes every waiter, which lets an orchestrator shut a pipeline down when one of its stages fails.
package queue
