package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/pipegrep/pkg/pipeline"
	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

func addIntRootStep(t *testing.T, pipe *pipeline.Pipeline, total int, opts ...pipeline.StepOption) *model.Step[int] {
	t.Helper()

	step, err := pipeline.AddRootStep(pipe, "root step", func(_ context.Context, emit func(int) error) error {
		for i := range total {
			err := emit(i)
			if err != nil {
				return err
			}
		}

		return nil
	}, opts...)
	require.NoError(t, err)

	return step
}

func addCollectSink[I any](t *testing.T, pipe *pipeline.Pipeline, input *model.Step[I], got *[]I) {
	t.Helper()

	err := pipeline.AddSink(pipe, "sink", input, func(_ context.Context, in I) error {
		*got = append(*got, in)

		return nil
	})
	require.NoError(t, err)
}
