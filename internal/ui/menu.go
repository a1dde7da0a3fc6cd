package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hydrosim/hydrosim-cli/internal/delivery"
)

type menuOption struct {
	title   string
	handler func()
}

// ShowMenu displays the main menu and handles user input until exit.
func ShowMenu(ctx context.Context, svc *delivery.Service) {
	exit := false
	menuOptions := []menuOption{
		{"Forecast leaf growth from a CSV file", func() { ForecastFile(ctx, svc) }},
		{"Forecast leaf growth from the example dataset", func() { ForecastExample(ctx, svc) }},
		{"Predict the growth pattern from environment readings", func() { PredictPattern(ctx, svc) }},
		{"Forecast every CSV file in a folder", func() { ForecastBatch(ctx, svc) }},
		{"Create an input template CSV", CreateTemplate},
		{"Clear downloaded datasets and cached models", ClearCaches},
		{"Exit the application", func() { fmt.Println("Exiting..."); exit = true }},
	}

	for !exit {
		fmt.Println("\033[34m===================\033[0m")
		for i, opt := range menuOptions {
			fmt.Printf("\033[34m%d. %s\033[0m\n", i+1, opt.title)
		}

		choice, err := ReadInt("Please enter your choice ", 1, len(menuOptions), 1)
		if errors.Is(err, io.EOF) {
			fmt.Println("\nExiting...")
			return
		}
		if err != nil {
			PrintError(err.Error())
			continue
		}

		menuOptions[choice-1].handler()
	}
}
