package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

// runSink hands every entry of input to sinkFn until the end of the stream.
func runSink[I any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], step *model.StepInfo, sinkFn func(context.Context, I) error) error {
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}

		startIter := time.Now()

		entry, err := input.Output.Take()
		if err != nil {
			return errors.Wrap(err, "unable to take from input")
		}

		if entry.End() {
			return nil
		}

		startFn := time.Now()

		err = sinkFn(ctx, entry.Value)
		if err != nil {
			return err
		}

		endFn := time.Since(startFn)

		for _, opt := range opts {
			err := opt.OnSinkOutput(input.Details, step, time.Since(startIter), endFn)
			if err != nil {
				return errors.Wrap(err, "unable to run on sink output function")
			}
		}
	}
}

// AddSink adds the last step of the pipeline. sinkFn is called for every entry of input, in order.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	step := &model.StepInfo{
		Type: model.SinkStepType,
		Name: name,
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(input.Details, step)
		if err != nil {
			return errors.Wrap(err, "unable to run before sink function")
		}
	}

	pipe.addRunner(name, func(ctx context.Context) error {
		err := runSink(ctx, pipe.opts, input, step, sinkFn)
		if err != nil {
			return err
		}

		for _, opt := range pipe.opts {
			err := opt.AfterSink(step, time.Since(pipe.startTime))
			if err != nil {
				return errors.Wrap(err, "unable to run after sink function")
			}
		}

		return nil
	})

	return nil
}
