package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/delivery"
	"github.com/hydrosim/hydrosim-cli/internal/forecast"
	"github.com/hydrosim/hydrosim-cli/internal/notification"
	"github.com/hydrosim/hydrosim-cli/internal/properties"
)

// ForecastFile handles the UI for forecasting a local csv file
func ForecastFile(ctx context.Context, svc *delivery.Service) {
	PrintWarning("The file needs a 'datetime' column or 'day' and 'time' columns, plus LeafCount, hole, temperature, humidity, light, pH, EC, TDS and WaterTemp.")

	path := ReadString("Enter the CSV file path: ")
	table, err := dataset.ReadFile(path)
	if err != nil {
		PrintError(err.Error())
		return
	}
	runForecast(ctx, svc, filepath.Base(path), table)
}

// ForecastExample handles the UI for forecasting the published example dataset
func ForecastExample(ctx context.Context, svc *delivery.Service) {
	url := properties.ExampleDatasetURL()
	fmt.Printf("Downloading example dataset from %s\n", url)

	table, err := dataset.NewFetcher(ctx).FetchTable(ctx, url)
	if err != nil {
		PrintError(err.Error())
		return
	}
	runForecast(ctx, svc, "example.csv", table)
}

func runForecast(ctx context.Context, svc *delivery.Service, name string, table *dataset.Table) {
	series, err := dataset.Preprocess(table)
	if err != nil {
		PrintError(err.Error())
		return
	}
	bounds, err := forecast.HorizonRange(series.UniqueDays(), svc.MaxDay)
	if err != nil {
		PrintError(err.Error())
		return
	}

	fmt.Printf("%s%d days observed, up to %d days can be forecast.%s\n", ColorGreen, series.UniqueDays(), bounds.Max, ColorReset)
	horizon, err := ReadInt("Enter the number of days to forecast ", bounds.Min, bounds.Max, bounds.Default)
	if err != nil {
		PrintError(err.Error())
		return
	}

	report, err := svc.ForecastTable(ctx, table, horizon)
	if err != nil {
		PrintError(err.Error())
		if nErr := notification.SendDiscordErrorNotification(ctx, fmt.Sprintf("Error forecasting %s: %s", name, err)); nErr != nil {
			PrintError(fmt.Sprintf("Failed to send notification: %s", nErr))
		}
		return
	}
	PrintReport(os.Stdout, report)

	dir, err := ResultPath("")
	if err != nil {
		PrintError(err.Error())
		return
	}
	csvPath, chartPath, err := SaveReport(dir, name, report)
	if err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess(fmt.Sprintf("Successful forecast!\n Forecast located at: %s\n Chart located at: %s", csvPath, chartPath))
}
