package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

func prepareRootStep[O any](pipe *Pipeline, name string, opts ...StepOption) (*model.Step[O], error) {
	step, err := newStep[O](pipe, model.RootStepType, name, opts...)
	if err != nil {
		return nil, err
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.StartStep.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

// runRoot lets stepFn push entries to output and closes the stream once stepFn returns without error.
func runRoot[O any](ctx context.Context, opts []model.PipelineOption, output *model.Step[O], stepFn func(ctx context.Context, emit func(O) error) error) error {
	startIter := time.Now()
	emit := func(out O) error {
		endFn := time.Since(startIter)

		err := output.Output.Put(out)
		if err != nil {
			return errors.Wrap(err, "unable to put to output")
		}

		err = onStepOutput(opts, model.StartStep.Details, output.Details, time.Since(startIter), endFn)
		startIter = time.Now()

		return err
	}

	err := stepFn(ctx, emit)
	if err != nil {
		return err
	}

	return errors.Wrap(output.Output.PutEndOfStream(), "unable to send end of stream")
}

// AddRootStep adds the first step of the pipeline. stepFn pushes every entry with emit.
func AddRootStep[O any](pipe *Pipeline, name string, stepFn func(ctx context.Context, emit func(O) error) error, opts ...StepOption) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	step, err := prepareRootStep[O](pipe, name, opts...)
	if err != nil {
		return nil, err
	}

	pipe.addRunner(name, func(ctx context.Context) error {
		return runRoot(ctx, pipe.opts, step, stepFn)
	})

	return step, nil
}
