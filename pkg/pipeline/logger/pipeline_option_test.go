package logger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/askiada/pipegrep/pkg/pipeline/logger"
	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

func TestPipelineLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	opt := logger.PipelineLogger(zap.New(core))

	step := &model.StepInfo{Name: "match", Type: model.NormalStepType, BufferSize: 4}
	sink := &model.StepInfo{Name: "output", Type: model.SinkStepType}

	require.NoError(t, opt.New())
	require.NoError(t, opt.PrepareStep(model.StartStep.Details, step))
	require.NoError(t, opt.PrepareSink(step, sink))
	require.NoError(t, opt.OnStepOutput(model.StartStep.Details, step, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.OnSinkOutput(step, sink, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.AfterSink(sink, time.Second))

	assert.Equal(t, 1, logs.FilterMessage("step added").FilterField(zap.String("step", "match")).Len())
	assert.Equal(t, 1, logs.FilterMessage("sink added").Len())
	assert.Equal(t, 1, logs.FilterMessage("step output").Len())
	assert.Equal(t, 1, logs.FilterMessage("sink output").Len())

	finished := logs.FilterMessage("sink finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, zap.InfoLevel, finished[0].Level)
}
