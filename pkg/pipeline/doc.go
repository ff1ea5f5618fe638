// Package pipeline provides a linear pipeline of stages connected by bounded queues.
//
// Each stage runs in its own goroutine. It takes entries from the bounded queue of the previous
// stage, applies its function and puts the results on its own queue. When a stage receives the
// end-of-stream marker it forwards exactly one marker downstream and stops, so termination travels
// stage by stage until the sink returns.
//
// The pipeline stops on the first error. The failing stage cancels the run and every queue is
// closed, which wakes the stages blocked on a full or empty queue. Run waits for all of them and
// returns the error of the stage that failed first.
//
// The runners behind AddStepOneToOne, AddStepFilter, AddStepOneToMany and AddSink only depend on
// their input and output queues, so a stage can be exercised on its own against prepared queues.
package pipeline
