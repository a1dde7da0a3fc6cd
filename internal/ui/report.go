package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hydrosim/hydrosim-cli/internal/delivery"
	"github.com/hydrosim/hydrosim-cli/output"
)

// PrintReport writes the forecast table, growth narrative and optimization verdicts.
func PrintReport(w io.Writer, report *delivery.Report) {
	fmt.Fprintf(w, "%s\nForecast (%d days):%s\n", ColorGreen, len(report.Forecast), ColorReset)
	fmt.Fprintf(w, "%-20s %10s %10s %10s\n", "ds", "yhat", "yhat_lower", "yhat_upper")
	for _, p := range report.Forecast {
		fmt.Fprintf(w, "%-20s %10.2f %10.2f %10.2f\n", p.Timestamp.Format("2006-01-02 15:04"), p.Yhat, p.YhatLower, p.YhatUpper)
	}

	fmt.Fprintf(w, "\n%s\n", report.Summary.Narrative())

	fmt.Fprintf(w, "%s\nOptimization:%s\n", ColorGreen, ColorReset)
	for _, v := range report.Verdicts {
		color := ColorGreen
		if !v.Optimal {
			color = ColorYellow
		}
		fmt.Fprintf(w, "%s- %s%s\n", color, v, ColorReset)
	}
}

// SaveReport writes the forecast csv and chart next to each other and returns their paths.
func SaveReport(dir, name string, report *delivery.Report) (string, string, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	csvPath := filepath.Join(dir, base+"_forecast.csv")
	if err := output.WriteForecastCSV(csvPath, report.Forecast); err != nil {
		return "", "", err
	}

	chartPath := filepath.Join(dir, base+"_forecast.png")
	if err := output.CreateForecastChart(chartPath, report.Series, report.Forecast); err != nil {
		return "", "", err
	}
	return csvPath, chartPath, nil
}
