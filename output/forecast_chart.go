package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"gonum.org/v1/gonum/floats"
)

const (
	chartWidth  = 960
	chartHeight = 540
	chartMargin = 60
)

// CreateForecastChart draws observed leaf counts, the forecast line and its
// uncertainty band to a PNG file.
func CreateForecastChart(path string, series dataset.Series, fc forecast.Forecast) error {
	if len(series) == 0 {
		return forecast.ErrEmptySeries
	}
	if len(fc) == 0 {
		return forecast.ErrEmptyForecast
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create result folder: %w", err)
	}

	start := series[0].Timestamp
	end := fc[len(fc)-1].Timestamp
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}

	upper := make([]float64, len(fc))
	for i, p := range fc {
		upper[i] = p.YhatUpper
	}
	yMax := max(floats.Max(upper), floats.Max(series.LeafCounts()), 1) * 1.1

	plotW := float64(chartWidth - 2*chartMargin)
	plotH := float64(chartHeight - 2*chartMargin)
	x := func(t time.Time) float64 {
		return chartMargin + plotW*t.Sub(start).Seconds()/end.Sub(start).Seconds()
	}
	y := func(v float64) float64 {
		return chartMargin + plotH*(1-v/yMax)
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1) // White background
	dc.Clear()

	// Axes
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, chartMargin, chartMargin, chartMargin+plotH)
	dc.DrawLine(chartMargin, chartMargin+plotH, chartMargin+plotW, chartMargin+plotH)
	dc.Stroke()
	for i := 0; i <= 4; i++ {
		v := yMax * float64(i) / 4
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), chartMargin-8, y(v), 1, 0.5)
	}
	dc.DrawStringAnchored(start.Format("2006-01-02"), chartMargin, chartMargin+plotH+16, 0, 0.5)
	dc.DrawStringAnchored(end.Format("2006-01-02"), chartMargin+plotW, chartMargin+plotH+16, 1, 0.5)
	dc.DrawStringAnchored("Lettuce leaf count forecast", chartWidth/2, chartMargin/2, 0.5, 0.5)

	// Uncertainty band
	dc.SetRGBA(0.25, 0.5, 0.9, 0.25)
	for _, p := range fc {
		dc.LineTo(x(p.Timestamp), y(p.YhatUpper))
	}
	for i := len(fc) - 1; i >= 0; i-- {
		dc.LineTo(x(fc[i].Timestamp), y(fc[i].YhatLower))
	}
	dc.ClosePath()
	dc.Fill()

	// Forecast
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	for _, p := range fc {
		dc.LineTo(x(p.Timestamp), y(p.Yhat))
	}
	dc.Stroke()

	// Observations
	dc.SetRGB(0.1, 0.6, 0.2)
	for _, o := range series {
		dc.DrawCircle(x(o.Timestamp), y(o.LeafCount), 4)
		dc.Fill()
	}

	drawLegend(dc)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	fmt.Printf("Forecast chart saved to: %s\n", path)
	return nil
}

func drawLegend(dc *gg.Context) {
	items := []struct {
		label   string
		r, g, b float64
	}{
		{"Observed", 0.1, 0.6, 0.2},
		{"Forecast", 0.1, 0.3, 0.8},
		{"Uncertainty", 0.6, 0.75, 0.95},
	}

	legendX := float64(chartWidth - chartMargin - 120)
	for i, item := range items {
		ly := float64(chartMargin + 10 + i*20)
		dc.SetRGB(item.r, item.g, item.b)
		dc.DrawRectangle(legendX, ly, 15, 15)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(item.label, legendX+20, ly+7, 0, 0.5)
	}
}
