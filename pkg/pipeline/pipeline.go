package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
	"github.com/askiada/pipegrep/pkg/queue"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context
	opts      []model.PipelineOption
	startTime time.Time
	goFn      []func(ctx context.Context) error
	closers   []func()
	running   atomic.Bool
}

// New creates a new pipeline.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		ctx:       ctx,
		startTime: time.Now(),
		opts:      opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

func (p *Pipeline) addRunner(name string, fn func(ctx context.Context) error) {
	p.goFn = append(p.goFn, func(ctx context.Context) error {
		return errors.Wrap(fn(ctx), name)
	})
}

func (p *Pipeline) closeQueues() {
	for _, closeFn := range p.closers {
		closeFn()
	}
}

// Run starts one goroutine per step and waits for all of them to finish.
// It returns the first error encountered.
func (p *Pipeline) Run() error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	p.startTime = time.Now()

	errGrp, dCtx := errgroup.WithContext(p.ctx)

	// wake every stage blocked on a queue as soon as the run is cancelled
	stop := context.AfterFunc(dCtx, p.closeQueues)
	defer stop()

	for _, fn := range p.goFn {
		errGrp.Go(func() error {
			return fn(dCtx)
		})
	}

	err := errGrp.Wait()
	if err != nil {
		if ctxErr := p.ctx.Err(); ctxErr != nil && errors.Is(err, queue.ErrClosed) {
			return errors.Wrap(ctxErr, "pipeline cancelled")
		}

		return err
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
