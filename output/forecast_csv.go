package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
)

type forecastRow struct {
	Ds        string  `csv:"ds"`
	Yhat      float64 `csv:"yhat"`
	YhatLower float64 `csv:"yhat_lower"`
	YhatUpper float64 `csv:"yhat_upper"`
}

// WriteForecastCSV saves the forecast as ds,yhat,yhat_lower,yhat_upper.
func WriteForecastCSV(path string, fc forecast.Forecast) error {
	if len(fc) == 0 {
		return forecast.ErrEmptyForecast
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create result folder: %w", err)
	}

	rows := make([]*forecastRow, 0, len(fc))
	for _, p := range fc {
		rows = append(rows, &forecastRow{
			Ds:        p.Timestamp.Format("2006-01-02 15:04:05"),
			Yhat:      p.Yhat,
			YhatLower: p.YhatLower,
			YhatUpper: p.YhatUpper,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing forecast file: %w", err)
	}

	fmt.Printf("Forecast saved to: %s\n", path)
	return nil
}
