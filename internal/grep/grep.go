package grep

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/pipegrep/internal/config"
	"github.com/askiada/pipegrep/internal/fsys"
	"github.com/askiada/pipegrep/pkg/pipeline"
	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

// Result is the outcome of a search.
type Result struct {
	Matches int
}

// Grep runs one search. It must not be reused.
type Grep struct {
	cfg *config.Config
	fs  fsys.FS
	out *bufio.Writer
	log *zap.Logger

	matches int
}

// New prepares a search of fs with cfg. Matches and the summary are written to out.
func New(cfg *config.Config, fs fsys.FS, out io.Writer, log *zap.Logger) *Grep {
	if log == nil {
		log = zap.NewNop()
	}

	return &Grep{
		cfg: cfg,
		fs:  fs,
		out: bufio.NewWriter(out),
		log: log,
	}
}

func (g *Grep) build(pipe *pipeline.Pipeline) error {
	bufferSize := pipeline.StepBufferSize(g.cfg.BufferSize)

	var (
		files, kept, lines, matched *model.Step[string]
		err                         error
	)

	files, err = pipeline.AddRootStep(pipe, "enumerate", g.enumerate, bufferSize)
	if err != nil {
		return err
	}

	kept, err = pipeline.AddStepFilter(pipe, "filter metadata", files, g.filterMetadata, bufferSize)
	if err != nil {
		return err
	}

	lines, err = pipeline.AddStepOneToMany(pipe, "expand lines", kept, g.expandLines, bufferSize)
	if err != nil {
		return err
	}

	matched, err = pipeline.AddStepFilter(pipe, "match", lines, g.match, bufferSize)
	if err != nil {
		return err
	}

	return pipeline.AddSink(pipe, "output", matched, g.output)
}

// Run searches the files and writes every matching line followed by the number of matches.
// Nothing but the matches found so far is written when a stage fails.
func (g *Grep) Run(ctx context.Context, opts ...model.PipelineOption) (Result, error) {
	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to create pipeline")
	}

	err = g.build(pipe)
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to build pipeline")
	}

	g.log.Debug("search started",
		zap.String("pattern", g.cfg.Pattern),
		zap.Int("buffer_size", g.cfg.BufferSize),
		zap.Int64("size_threshold", g.cfg.SizeThreshold),
		zap.Int64("uid", g.cfg.OwnerID),
		zap.Int64("gid", g.cfg.GroupID),
	)

	runErr := pipe.Run()

	if runErr == nil {
		_, err = fmt.Fprintf(g.out, "***** You found %d matches *****\n", g.matches)
		if err != nil {
			runErr = errors.Wrap(err, "unable to write summary")
		}
	}

	err = g.out.Flush()
	if runErr != nil {
		return Result{Matches: g.matches}, runErr
	}

	if err != nil {
		return Result{}, errors.Wrap(err, "unable to flush output")
	}

	return Result{Matches: g.matches}, nil
}
