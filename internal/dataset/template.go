package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

type templateRow struct {
	Datetime    string  `csv:"datetime"`
	LeafCount   int     `csv:"LeafCount"`
	Hole        int     `csv:"hole"`
	Temperature float64 `csv:"temperature"`
	Humidity    float64 `csv:"humidity"`
	Light       int     `csv:"light"`
	PH          float64 `csv:"pH"`
	EC          float64 `csv:"EC"`
	TDS         int     `csv:"TDS"`
	WaterTemp   float64 `csv:"WaterTemp"`
}

var templateRows = []*templateRow{
	{"2024-07-22 14:30:00", 20, 1, 25.3, 60.5, 500, 6.5, 1.5, 700, 23.0},
	{"2024-07-23 14:30:00", 25, 1, 26.1, 61.0, 510, 6.4, 1.6, 720, 23.2},
}

// WriteTemplate writes an example input file users can fill in.
func WriteTemplate(w io.Writer) error {
	if err := gocsv.Marshal(&templateRows, w); err != nil {
		return fmt.Errorf("error writing template csv: %w", err)
	}
	return nil
}

func WriteTemplateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create template folder: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating template file: %w", err)
	}
	defer file.Close()

	return WriteTemplate(file)
}
