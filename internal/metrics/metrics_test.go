package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/feral-file/pplp-engine/internal/metrics"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		assert.Equal(t, metrics.MeterName, sm.Scope.Name)
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := metrics.New(provider)
	require.NoError(t, err)

	r.ActionSubmitted(ctx, "DONATION")
	r.ActionSubmitted(ctx, "DONATION")
	r.ActionScored(ctx, "DONATION", "pass", 352.35)
	r.ActionScored(ctx, "DONATION", "fail", 0)
	r.Reservation(ctx, "accepted")
	r.Signature(ctx, "threshold_met")
	r.MintSettled(ctx, "confirmed")

	data := collect(t, reader)

	submitted, ok := data["pplp.actions.submitted"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, submitted.DataPoints, 1)
	assert.Equal(t, int64(2), submitted.DataPoints[0].Value)

	scored, ok := data["pplp.actions.scored"].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, scored.DataPoints, 2)
	for _, dp := range scored.DataPoints {
		v, ok := dp.Attributes.Value(attribute.Key("decision"))
		require.True(t, ok)
		assert.Contains(t, []string{"pass", "fail"}, v.AsString())
	}

	reward, ok := data["pplp.reward"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, reward.DataPoints, 1)
	assert.Equal(t, uint64(1), reward.DataPoints[0].Count)
	assert.InDelta(t, 352.35, reward.DataPoints[0].Sum, 1e-9)

	for _, name := range []string{"pplp.reservations", "pplp.signatures", "pplp.mints.settled"} {
		assert.Contains(t, data, name)
	}
}

func TestNoopAndDisabledSetup(t *testing.T) {
	r := metrics.NewNoop()
	r.ActionSubmitted(context.Background(), "CONTENT")

	shutdown, err := metrics.Setup(context.Background(), metrics.Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
