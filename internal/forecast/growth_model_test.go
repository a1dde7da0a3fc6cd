package forecast

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleGrowthModelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model", "growth_model.json")
	require.NoError(t, WriteSampleGrowthModel(path))

	model, err := LoadGrowthModel(path)
	require.NoError(t, err)
	assert.Equal(t, SampleGrowthModel().K, model.K)
	assert.Len(t, model.Regressors, 4)
}

func TestGrowthModelPredictIsBoundedByCapacity(t *testing.T) {
	model := &GrowthModel{Origin: testSeries()[0].Timestamp, K: 0.3, M: 10, Sigma: 1, IntervalZ: 2}
	frame, err := BuildFutureFrame(testSeries(), 30, DefaultFrameConfig())
	require.NoError(t, err)

	fc, err := model.Predict(context.Background(), frame)
	require.NoError(t, err)
	require.Len(t, fc, 30)

	for i, p := range fc {
		assert.Equal(t, frame[i].Timestamp, p.Timestamp)
		assert.Less(t, p.Yhat, 18.0)
		assert.InDelta(t, 2.0, p.Yhat-p.YhatLower, 1e-9)
		assert.InDelta(t, 2.0, p.YhatUpper-p.Yhat, 1e-9)
		if i > 0 {
			assert.Greater(t, p.Yhat, fc[i-1].Yhat, "logistic trend grows")
		}
	}
}

func TestGrowthModelRegressorsShiftEstimate(t *testing.T) {
	frame, err := BuildFutureFrame(testSeries(), 1, DefaultFrameConfig())
	require.NoError(t, err)

	base := &GrowthModel{Origin: testSeries()[0].Timestamp, K: 0.2, M: 10}
	withTemp := &GrowthModel{Origin: base.Origin, K: 0.2, M: 10, Regressors: map[string]Regressor{
		"temperature": {Coef: 1, Mean: 25, Std: 2},
	}}

	a, err := base.Predict(context.Background(), frame)
	require.NoError(t, err)
	b, err := withTemp.Predict(context.Background(), frame)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b[0].Yhat-a[0].Yhat, 1e-9)
}

func TestGrowthModelRejectsBadInput(t *testing.T) {
	model := SampleGrowthModel()
	frame, err := BuildFutureFrame(testSeries(), 2, FrameConfig{MaxHorizon: 40})
	require.NoError(t, err)
	_, err = model.Predict(context.Background(), frame)
	assert.ErrorContains(t, err, "capacity")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	frame, err = BuildFutureFrame(testSeries(), 2, DefaultFrameConfig())
	require.NoError(t, err)
	_, err = model.Predict(ctx, frame)
	assert.ErrorIs(t, err, context.Canceled)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"regressors":{"wind":{"coef":1,"mean":0,"std":1}}}`), 0644))
	_, err = LoadGrowthModel(path)
	assert.ErrorContains(t, err, "unknown regressor")
}
