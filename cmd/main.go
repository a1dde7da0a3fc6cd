package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/delivery"
	"github.com/hydrosim/hydrosim-cli/internal/notification"
	"github.com/hydrosim/hydrosim-cli/internal/pattern"
	"github.com/hydrosim/hydrosim-cli/internal/properties"
	"github.com/hydrosim/hydrosim-cli/internal/ui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func printBanner() {
	figure1 := figure.NewFigure("HydroSim", "isometric1", true)
	bannercolor.Green(figure1.String())
	fmt.Println()
}

func loadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Printf("No .env file found, using environment only")
		}
	}
}

func recoverPanic(ctx context.Context) {
	if r := recover(); r != nil {
		fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
		fmt.Printf("\033[31mPlease check the input and try again.\033[0m\n")

		errMessage := fmt.Sprintf("HydroSim CLI panic:\n\n%v\n\nStack trace:\n%s", r, debug.Stack())
		if err := notification.SendDiscordErrorNotification(ctx, errMessage); err != nil {
			fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
		}
		os.Exit(1)
	}
}

func withService(ctx context.Context, fn func(*delivery.Service) error) error {
	svc, err := delivery.LoadService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func newRootCmd(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           "hydrosim",
		Short:         "Hydroponic lettuce leaf growth forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer recoverPanic(ctx)
			printBanner()
			fmt.Println("Loading models...")
			return withService(ctx, func(svc *delivery.Service) error {
				ui.ShowMenu(ctx, svc)
				return nil
			})
		},
	}

	root.AddCommand(newForecastCmd(ctx), newPatternCmd(ctx), newTemplateCmd(), newBatchCmd(ctx), newCacheCmd())
	return root
}

func newForecastCmd(ctx context.Context) *cobra.Command {
	var (
		file    string
		horizon int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast leaf growth for a sensor CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(ctx, func(svc *delivery.Service) error {
				report, err := svc.ForecastFile(ctx, file, horizon)
				if err != nil {
					return err
				}
				ui.PrintReport(cmd.OutOrStdout(), report)

				if out == "" {
					out = properties.DataPath("result")
				}
				csvPath, chartPath, err := ui.SaveReport(out, file, report)
				if err != nil {
					return err
				}
				ui.PrintSuccess(fmt.Sprintf("Forecast located at: %s\nChart located at: %s", csvPath, chartPath))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "sensor CSV file")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "days to forecast (0 uses the suggested default)")
	cmd.Flags().StringVar(&out, "out", "", "result folder (default data/result)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newPatternCmd(ctx context.Context) *cobra.Command {
	reading := pattern.DefaultReading()
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Predict the growth pattern for a set of environment readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(ctx, func(svc *delivery.Service) error {
				prediction, err := svc.PredictPattern(ctx, reading)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), prediction.Label)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&reading.Temperature, "temperature", reading.Temperature, "air temperature")
	f.Float64Var(&reading.Humidity, "humidity", reading.Humidity, "relative humidity")
	f.Float64Var(&reading.Light, "light", reading.Light, "light intensity")
	f.Float64Var(&reading.PH, "ph", reading.PH, "nutrient solution pH")
	f.Float64Var(&reading.EC, "ec", reading.EC, "electrical conductivity")
	f.Float64Var(&reading.TDS, "tds", reading.TDS, "total dissolved solids")
	f.Float64Var(&reading.WaterTemp, "water-temp", reading.WaterTemp, "water temperature")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an input template CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = properties.DataPath("result", "template.csv")
			}
			if err := dataset.WriteTemplateFile(out); err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Template created at: %s", out))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default data/result/template.csv)")
	return cmd
}

func newBatchCmd(ctx context.Context) *cobra.Command {
	var (
		dir     string
		horizon int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Forecast every CSV file in a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(ctx, func(svc *delivery.Service) error {
				results, err := svc.ForecastBatch(ctx, dir, horizon)
				if err != nil {
					return err
				}
				resultDir := properties.DataPath("result", "batch")
				for _, r := range results {
					if _, _, err := ui.SaveReport(resultDir, r.File, r.Report); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: peak %.0f leaves, growth %.2f%%\n", r.File, r.Report.Summary.PeakLeafCount, r.Report.Summary.Percentage)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "folder with sensor CSV files")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "days to forecast (0 uses each file's default)")
	cmd.MarkFlagRequired("dir")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage downloaded datasets and trained models",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove cached datasets and pattern models",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := delivery.ClearCaches(); err != nil {
				return err
			}
			ui.PrintSuccess("Cache cleared")
			return nil
		},
	})
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(ctx).Execute(); err != nil {
		fmt.Printf("\033[31mError: %s\033[0m\n", err.Error())
		stop()
		os.Exit(1)
	}
}
