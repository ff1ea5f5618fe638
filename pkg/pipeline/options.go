package pipeline

import "github.com/askiada/pipegrep/pkg/pipeline/model"

const defaultBufferSize = 1

// StepOption configures a step.
type StepOption func(s *model.StepInfo)

// StepBufferSize sets the capacity of the queue the step writes to.
func StepBufferSize(bufferSize int) StepOption {
	return func(s *model.StepInfo) {
		s.BufferSize = bufferSize
	}
}
