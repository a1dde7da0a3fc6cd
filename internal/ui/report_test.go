package ui

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/delivery"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idealClassifier struct{}

func (idealClassifier) Predict(ctx context.Context, reading pattern.Reading) (int, error) {
	return 2, nil
}

func templateReport(t *testing.T) *delivery.Report {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteTemplate(&buf))

	svc := delivery.NewService(forecast.SampleGrowthModel(), idealClassifier{})
	report, err := svc.Forecast(context.Background(), &buf, 3)
	require.NoError(t, err)
	return report
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	PrintReport(&out, templateReport(t))

	text := out.String()
	assert.Contains(t, text, "Forecast (3 days):")
	assert.Contains(t, text, "2024-07-23 14:30")
	assert.Contains(t, text, "Lettuce leaf growth forecast")
	assert.Contains(t, text, "Average temperature")
	assert.Equal(t, 12, strings.Count(text, "- Average"))
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()

	csvPath, chartPath, err := SaveReport(dir, "/data/greenhouse-a.csv", templateReport(t))
	require.NoError(t, err)
	assert.Equal(t, "greenhouse-a_forecast.csv", strings.TrimPrefix(csvPath, dir+string(os.PathSeparator)))
	assert.FileExists(t, csvPath)
	assert.FileExists(t, chartPath)
}
