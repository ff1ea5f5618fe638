package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/pipegrep/pkg/pipeline/measure"
	"github.com/askiada/pipegrep/pkg/pipeline/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	mt := m.AddMetric("step")

	assert.Equal(t, time.Duration(0), mt.AVGDuration())

	mt.AddDuration(2 * time.Second)
	mt.AddDuration(4 * time.Second)
	mt.AddTransportDuration("parent", 10*time.Millisecond)
	mt.AddTransportDuration("parent", 30*time.Millisecond)

	assert.Equal(t, int64(2), mt.Total())
	assert.Equal(t, 3*time.Second, mt.AVGDuration())
	require.Contains(t, mt.AllTransports(), "parent")
	assert.Equal(t, 20*time.Millisecond, mt.AllTransports()["parent"].Elapsed)
	assert.Same(t, mt, m.GetMetric("step"))
}

func TestPipelineMeasure(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	opt := measure.PipelineMeasure(m)

	parent := &model.StepInfo{Name: "parent"}
	step := &model.StepInfo{Name: "step"}
	sink := &model.StepInfo{Name: "sink"}

	require.NoError(t, opt.New())
	require.NoError(t, opt.PrepareStep(parent, step))
	require.NoError(t, opt.PrepareSink(step, sink))
	require.NoError(t, opt.OnStepOutput(parent, step, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.OnSinkOutput(step, sink, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.OnSinkOutput(step, sink, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.AfterSink(sink, time.Second))
	require.NoError(t, opt.Finish())

	assert.Len(t, m.AllMetrics(), 4)
	assert.Equal(t, int64(1), m.GetMetric("step").Total())
	assert.Equal(t, int64(2), m.GetMetric("sink").Total())
	assert.Equal(t, time.Second, m.GetMetric("sink").GetTotalDuration())
	assert.Equal(t, time.Second, m.GetMetric(model.EndStep.Details.Name).GetTotalDuration())
}
