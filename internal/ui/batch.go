package ui

import (
	"context"
	"fmt"

	"github.com/hydrosim/hydrosim-cli/internal/delivery"
)

// ForecastBatch handles the UI for forecasting a folder of csv files
func ForecastBatch(ctx context.Context, svc *delivery.Service) {
	PrintWarning("Every '.csv' file in the folder is forecast with the same number of days. Use 0 for the per-file default.")

	dir := ReadString("Enter the folder path: ")
	horizon, err := ReadInt("Enter the number of days to forecast ", 0, svc.MaxDay, 0)
	if err != nil {
		PrintError(err.Error())
		return
	}

	results, err := svc.ForecastBatch(ctx, dir, horizon)
	if err != nil {
		PrintError(err.Error())
		return
	}

	resultDir, err := ResultPath("batch")
	if err != nil {
		PrintError(err.Error())
		return
	}
	for _, r := range results {
		if _, _, err := SaveReport(resultDir, r.File, r.Report); err != nil {
			PrintError(err.Error())
			return
		}
		fmt.Printf("%s: peak %.0f leaves, growth %.2f%%\n", r.File, r.Report.Summary.PeakLeafCount, r.Report.Summary.Percentage)
	}
	PrintSuccess(fmt.Sprintf("Forecasted %d files. Results located at: %s", len(results), resultDir))
}
