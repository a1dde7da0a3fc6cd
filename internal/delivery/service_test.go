package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClassifier int

func (f fixedClassifier) Predict(ctx context.Context, reading pattern.Reading) (int, error) {
	return int(f), nil
}

type failingModel struct{}

func (failingModel) Predict(ctx context.Context, frame forecast.FutureFrame) (forecast.Forecast, error) {
	return nil, errors.New("model not fitted")
}

func templateCSV(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteTemplate(&buf))
	return buf.Bytes()
}

func testService(t *testing.T) *Service {
	t.Setenv("MAX_DAY", "")
	t.Setenv("CAPACITY", "")
	t.Setenv("DISCORD_ERROR_NOTIFICATION_URL", "")
	t.Setenv("DISCORD_SUCCESS_NOTIFICATION_URL", "")
	return NewService(forecast.SampleGrowthModel(), fixedClassifier(2))
}

func TestForecastUsesDefaultHorizon(t *testing.T) {
	s := testService(t)

	report, err := s.Forecast(context.Background(), bytes.NewReader(templateCSV(t)), 0)
	require.NoError(t, err)

	assert.Equal(t, forecast.Horizon{Min: 1, Max: 38, Default: 2}, report.Horizon)
	require.Len(t, report.Series, 2)
	require.Len(t, report.Frame, 2)
	require.Len(t, report.Forecast, 2)
	assert.Equal(t, report.Series[1].Timestamp, report.Frame[0].Timestamp)
	assert.Equal(t, 26.1, report.Frame[1].Temperature)
	assert.Equal(t, 18.0, report.Frame[1].Cap)
	assert.Equal(t, 25.0, report.Summary.LastLeafCount)
	assert.Equal(t, 2, report.Summary.Horizon)
	assert.Len(t, report.Verdicts, 12)

	for _, p := range report.Forecast {
		assert.GreaterOrEqual(t, p.YhatLower, 0.0)
	}
}

func TestForecastRejectsHorizonPastCycle(t *testing.T) {
	s := testService(t)

	_, err := s.Forecast(context.Background(), bytes.NewReader(templateCSV(t)), 39)
	assert.ErrorIs(t, err, forecast.ErrInvalidHorizon)

	report, err := s.Forecast(context.Background(), bytes.NewReader(templateCSV(t)), 38)
	require.NoError(t, err)
	assert.Len(t, report.Forecast, 38)
}

func TestForecastSurfacesTypedErrors(t *testing.T) {
	s := testService(t)

	_, err := s.Forecast(context.Background(), strings.NewReader("datetime,LeafCount\n2024-07-22 14:30:00,20\n"), 0)
	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "hole", missing.Column)

	s.Model = failingModel{}
	_, err = s.Forecast(context.Background(), bytes.NewReader(templateCSV(t)), 0)
	var fcErr *forecast.ForecastError
	assert.ErrorAs(t, err, &fcErr)
}

func TestPredictPattern(t *testing.T) {
	s := testService(t)

	got, err := s.PredictPattern(context.Background(), pattern.DefaultReading())
	require.NoError(t, err)
	assert.Equal(t, "Pattern 2: Ideal", got.Label)
}

func TestLoadServiceRemote(t *testing.T) {
	t.Setenv("MODEL_GRPC_ADDR", "localhost:50051")

	s, err := LoadService(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s.Model)
	assert.NotNil(t, s.Classifier)
	assert.NoError(t, s.Close())
}

func TestLoadServiceLocal(t *testing.T) {
	var body strings.Builder
	body.WriteString("temperature,humidity,light,pH,EC,TDS,WaterTemp,Pattern\n")
	for i := 0; i < 10; i++ {
		j := float64(i) * 0.1
		fmt.Fprintf(&body, "%.1f,85,800,5.5,900,450,21,1\n", 20+j)
		fmt.Fprintf(&body, "%.1f,60,2500,6.5,1500,700,26,2\n", 26+j)
		fmt.Fprintf(&body, "%.1f,40,9000,7.5,2400,1200,31,3\n", 32+j)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body.String())
	}))
	defer srv.Close()

	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)
	t.Setenv("MODEL_GRPC_ADDR", "")
	t.Setenv("FORECAST_MODEL_PATH", "")
	t.Setenv("DATASET_CLIENT_ID", "")
	t.Setenv("PATTERN_DATASET_URL", srv.URL)

	s, err := LoadService(context.Background())
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(root, "data", "model", "growth_model.json"))
	assert.NoError(t, err, "sample growth model is written on first start")

	got, err := s.PredictPattern(context.Background(), pattern.Reading{Temperature: 26.2, Humidity: 61, Light: 2400, PH: 6.4, EC: 1480, TDS: 690, WaterTemp: 26})
	require.NoError(t, err)
	assert.Equal(t, pattern.Ideal, got.Pattern)
}

func TestClearCaches(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	datasets := filepath.Join(root, "data", "cache", dataset.CacheName)
	models := filepath.Join(root, "data", "cache", modelCacheName)
	for _, dir := range []string{datasets, models} {
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0644))
	}

	require.NoError(t, ClearCaches())

	for _, dir := range []string{datasets, models} {
		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err), dir)
	}
}
