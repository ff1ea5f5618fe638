// Package logger provides a pipeline option logging the lifecycle of every step with zap.
package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

type pipelineLogger struct {
	log *zap.Logger
}

func (pl *pipelineLogger) New() error {
	pl.log.Debug("pipeline created")

	return nil
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.log.Debug("step added",
		zap.String("step", step.Name),
		zap.String("type", string(step.Type)),
		zap.String("parent", parentStep.Name),
		zap.Int("buffer_size", step.BufferSize),
	)

	return nil
}

func (pl *pipelineLogger) OnStepOutput(_, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	if ce := pl.log.Check(zap.DebugLevel, "step output"); ce != nil {
		ce.Write(
			zap.String("step", step.Name),
			zap.Duration("iteration", iterationDuration),
			zap.Duration("computation", computationDuration),
		)
	}

	return nil
}

func (pl *pipelineLogger) PrepareSink(parentStep, step *model.StepInfo) error {
	pl.log.Debug("sink added", zap.String("step", step.Name), zap.String("parent", parentStep.Name))

	return nil
}

func (pl *pipelineLogger) OnSinkOutput(_, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	if ce := pl.log.Check(zap.DebugLevel, "sink output"); ce != nil {
		ce.Write(
			zap.String("step", step.Name),
			zap.Duration("iteration", iterationDuration),
			zap.Duration("computation", computationDuration),
		)
	}

	return nil
}

func (pl *pipelineLogger) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	pl.log.Info("sink finished", zap.String("step", step.Name), zap.Duration("total", totalDuration))

	return nil
}

func (pl *pipelineLogger) Finish() error {
	pl.log.Debug("pipeline finished")

	return nil
}

// PipelineLogger logs every pipeline event with log.
func PipelineLogger(log *zap.Logger) model.PipelineOption {
	return &pipelineLogger{log: log}
}
