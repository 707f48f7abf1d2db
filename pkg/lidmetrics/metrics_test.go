package lidmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/lilyrrose/lid/pkg/lid"
)

// ============================================================================
// 测试辅助函数
// ============================================================================

// newTestMeterProvider 创建用于测试的 MeterProvider
func newTestMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
	)
	return mp, reader
}

// counterValue 从采集结果中取指定计数器的总和，不存在时返回 0
func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

// ============================================================================
// New 测试
// ============================================================================

func TestNew_Default(t *testing.T) {
	obs, err := New()
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestNew_WithOptions(t *testing.T) {
	mp, _ := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := New(
		WithInstrumentationName("test-instrumentation"),
		WithMeterProvider(mp),
	)
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestNew_WithEmptyInstrumentationName(t *testing.T) {
	// 空名称应该使用默认值
	obs, err := New(WithInstrumentationName(""))
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestNew_WithNilProvider(t *testing.T) {
	// nil provider 应该使用全局默认
	obs, err := New(WithMeterProvider(nil))
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestNew_NilOption(t *testing.T) {
	obs, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, obs)
}

// ============================================================================
// ObserveGenerate 测试
// ============================================================================

func TestObserveGenerate_Counts(t *testing.T) {
	mp, reader := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := New(WithMeterProvider(mp))
	require.NoError(t, err)

	obs.ObserveGenerate(false)
	obs.ObserveGenerate(false)
	obs.ObserveGenerate(true)

	assert.Equal(t, int64(3), counterValue(t, reader, "lid.generated.total"))
	assert.Equal(t, int64(1), counterValue(t, reader, "lid.rotation.total"))
}

func TestObserveGenerate_NoRotation(t *testing.T) {
	mp, reader := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := New(WithMeterProvider(mp))
	require.NoError(t, err)

	for range 10 {
		obs.ObserveGenerate(false)
	}

	assert.Equal(t, int64(10), counterValue(t, reader, "lid.generated.total"))
	assert.Equal(t, int64(0), counterValue(t, reader, "lid.rotation.total"))
}

// ============================================================================
// 与生成器的集成测试
// ============================================================================

func TestObserver_WithGenerator(t *testing.T) {
	mp, reader := newTestMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := New(WithMeterProvider(mp))
	require.NoError(t, err)

	// 单字符序列段，基数 36：每 36 次生成必然覆盖一次回绕
	gen, err := lid.NewGenerator(
		lid.WithSequenceLength(1),
		lid.WithIncrementRange(35, 36),
		lid.WithObserver(obs),
	)
	require.NoError(t, err)

	const n = 72
	for range n {
		_, err := gen.Generate()
		require.NoError(t, err)
	}

	assert.Equal(t, int64(n), counterValue(t, reader, "lid.generated.total"))
	assert.Equal(t, int64(2), counterValue(t, reader, "lid.rotation.total"))
}
