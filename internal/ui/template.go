package ui

import (
	"fmt"

	"github.com/hydrosim/hydrosim-cli/internal/dataset"
	"github.com/hydrosim/hydrosim-cli/internal/delivery"
)

// CreateTemplate handles the UI for writing the input template
func CreateTemplate() {
	path, err := ResultPath("template.csv")
	if err != nil {
		PrintError(err.Error())
		return
	}
	if err := dataset.WriteTemplateFile(path); err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess(fmt.Sprintf("Template created at: %s", path))
}

// ClearCaches handles the UI for removing cached datasets and models
func ClearCaches() {
	if err := delivery.ClearCaches(); err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess("Cache cleared. Datasets are downloaded again on next use.")
}
