package model

import "github.com/askiada/pipegrep/pkg/queue"

// StepType is the kind of a step.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step of the pipeline.
type StepInfo struct {
	Type       StepType
	Name       string
	BufferSize int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is a stage of the pipeline together with the queue it writes to.
type Step[O any] struct {
	Output  *queue.Bounded[O]
	Details *StepInfo
}
