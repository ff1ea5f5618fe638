package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
	"github.com/askiada/pipegrep/pkg/queue"
)

// createInputStep returns a step whose queue already holds 0..total-1 followed by the end of stream.
func createInputStep(t *testing.T, total int) *model.Step[int] {
	t.Helper()

	q, err := queue.New[int](total + 1)
	require.NoError(t, err)

	for i := range total {
		require.NoError(t, q.Put(i))
	}

	require.NoError(t, q.PutEndOfStream())

	return &model.Step[int]{Output: q, Details: &model.StepInfo{Name: "input"}}
}

func createOutputStep[O any](t *testing.T, capacity int) *model.Step[O] {
	t.Helper()

	q, err := queue.New[O](capacity)
	require.NoError(t, err)

	return &model.Step[O]{Output: q, Details: &model.StepInfo{Name: "output"}}
}

// processOutputStep takes every entry of step until the end of stream.
func processOutputStep[O any](t *testing.T, step *model.Step[O]) []O {
	t.Helper()

	res := []O{}

	for {
		entry, err := step.Output.Take()
		require.NoError(t, err)

		if entry.End() {
			return res
		}

		res = append(res, entry.Value)
	}
}
