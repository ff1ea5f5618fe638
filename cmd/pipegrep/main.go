// Command pipegrep searches the regular files of the current directory for a string.
//
//	pipegrep <buffsize> <filesize> <uid> <gid> <string>
//
// Files whose size is not greater than <filesize>, not owned by <uid> or not in group <gid> are
// skipped; -1 disables the corresponding filter. Every matching line is printed followed by the
// number of matches.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/pipegrep/internal/config"
	"github.com/askiada/pipegrep/internal/fsys"
	"github.com/askiada/pipegrep/internal/grep"
	"github.com/askiada/pipegrep/internal/logging"
	"github.com/askiada/pipegrep/pkg/pipeline/drawer"
	"github.com/askiada/pipegrep/pkg/pipeline/logger"
	"github.com/askiada/pipegrep/pkg/pipeline/measure"
	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)

		if errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(stderr, config.Usage)
		}

		return 1
	}

	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		fmt.Fprintf(stderr, "unable to create logger: %v\n", err)

		return 1
	}
	defer func() { _ = log.Sync() }()

	opts := []model.PipelineOption{logger.PipelineLogger(log)}

	var m *measure.DefaultMeasure
	if cfg.Measure || cfg.DrawOutput != "" {
		m = measure.NewDefaultMeasure()
		opts = append(opts, measure.PipelineMeasure(m))
	}

	if cfg.DrawOutput != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.DrawOutput), m))
	}

	res, err := grep.New(cfg, fsys.NewDir(cfg.Dir), stdout, log).Run(ctx, opts...)
	if err != nil {
		log.Error("search failed", zap.Error(err))
		fmt.Fprintln(stderr, err)

		return 1
	}

	if cfg.Measure {
		logMeasure(log, m)
	}

	log.Info("search finished", zap.Int("matches", res.Matches))

	return 0
}

func logMeasure(log *zap.Logger, m measure.Measure) {
	for name, mt := range m.AllMetrics() {
		log.Info("step measure",
			zap.String("step", name),
			zap.Int64("outputs", mt.Total()),
			zap.Duration("avg", mt.AVGDuration()),
			zap.Duration("total", mt.GetTotalDuration()),
		)
	}
}
