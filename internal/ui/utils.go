package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hydrosim/hydrosim-cli/internal/properties"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

var stdin = bufio.NewReader(os.Stdin)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a line from stdin with trimming
func ReadString(prompt string) string {
	input, _ := readLine(prompt)
	return input
}

// readLine returns io.EOF only when stdin is closed before any input.
func readLine(prompt string) (string, error) {
	PrintInfo(prompt)
	input, err := stdin.ReadString('\n')
	input = strings.TrimSpace(input)
	if errors.Is(err, io.EOF) && input == "" {
		return "", io.EOF
	}
	return input, nil
}

// ReadInt reads an integer within [min, max]. An empty answer returns def.
func ReadInt(prompt string, min, max, def int) (int, error) {
	input, err := readLine(fmt.Sprintf("%s[%d]: ", prompt, def))
	if err != nil {
		return 0, err
	}
	if input == "" {
		return def, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadFloat reads a number. An empty answer returns def.
func ReadFloat(prompt string, def float64) (float64, error) {
	input, err := readLine(fmt.Sprintf("%s[%g]: ", prompt, def))
	if err != nil {
		return 0, err
	}
	if input == "" {
		return def, nil
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// ResultPath returns a file path under data/result, creating the folder.
func ResultPath(name string) (string, error) {
	resultPath := properties.DataPath("result")
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %v", err)
	}
	return filepath.Join(resultPath, name), nil
}
