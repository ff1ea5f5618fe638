package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
	"github.com/askiada/pipegrep/pkg/queue"
)

func onStepOutput(opts []model.PipelineOption, parentStep, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range opts {
		err := opt.OnStepOutput(parentStep, step, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run on step output function")
		}
	}

	return nil
}

// runStep takes entries from input until the end of the stream, hands each of them to stepFn and
// forwards a single end-of-stream marker to output.
func runStep[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], stepFn func(context.Context, I, func(O) error) error) error {
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
			return errors.Wrap(output.Output.PutEndOfStream(), "unable to forward end of stream")
		}

		startFn := time.Now()
		emit := func(out O) error {
			endFn := time.Since(startFn)

			err := output.Output.Put(out)
			if err != nil {
				return errors.Wrap(err, "unable to put to output")
			}

			return onStepOutput(opts, input.Details, output.Details, time.Since(startIter), endFn)
		}

		err = stepFn(ctx, entry.Value, emit)
		if err != nil {
			return err
		}
	}
}

func runOneToOne[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	return runStep(ctx, opts, input, output, func(ctx context.Context, in I, emit func(O) error) error {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return err
		}

		return emit(out)
	})
}

func runFilter[I any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[I], filterFn func(context.Context, I) (bool, error)) error {
	return runStep(ctx, opts, input, output, func(ctx context.Context, in I, emit func(I) error) error {
		keep, err := filterFn(ctx, in)
		if err != nil {
			return err
		}

		if !keep {
			return nil
		}

		return emit(in)
	})
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step, err := newStep[O](pipe, model.NormalStepType, name, opts...)
	if err != nil {
		return nil, err
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(input.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

func newStep[O any](pipe *Pipeline, stepType model.StepType, name string, opts ...StepOption) (*model.Step[O], error) {
	details := &model.StepInfo{
		Type:       stepType,
		Name:       name,
		BufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(details)
	}

	output, err := queue.New[O](details.BufferSize)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create output of step %s", name)
	}

	pipe.closers = append(pipe.closers, output.Close)

	return &model.Step[O]{
		Output:  output,
		Details: details,
	}, nil
}

// AddStepOneToOne adds a step producing exactly one output for each input.
func AddStepOneToOne[I any, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption) (*model.Step[O], error) {
	step, err := prepareStep[I, O](pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	pipe.addRunner(name, func(ctx context.Context) error {
		return runOneToOne(ctx, pipe.opts, input, step, oneToOneFn)
	})

	return step, nil
}

// AddStepFilter adds a step forwarding the inputs for which filterFn returns true.
func AddStepFilter[I any](pipe *Pipeline, name string, input *model.Step[I], filterFn func(context.Context, I) (bool, error), opts ...StepOption) (*model.Step[I], error) {
	step, err := prepareStep[I, I](pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	pipe.addRunner(name, func(ctx context.Context) error {
		return runFilter(ctx, pipe.opts, input, step, filterFn)
	})

	return step, nil
}

// AddStepOneToMany adds a step producing any number of outputs for each input.
// oneToManyFn pushes the outputs with emit, in order, as soon as they are available.
func AddStepOneToMany[I any, O any](pipe *Pipeline, name string, input *model.Step[I], oneToManyFn func(ctx context.Context, in I, emit func(O) error) error, opts ...StepOption) (*model.Step[O], error) {
	step, err := prepareStep[I, O](pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	pipe.addRunner(name, func(ctx context.Context) error {
		return runStep(ctx, pipe.opts, input, step, oneToManyFn)
	})

	return step, nil
}
