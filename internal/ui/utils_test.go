package ui

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStdin(t *testing.T, input string) {
	t.Helper()
	previous := stdin
	stdin = bufio.NewReader(strings.NewReader(input))
	t.Cleanup(func() { stdin = previous })
}

func TestReadIntDefaultsAndBounds(t *testing.T) {
	withStdin(t, "\n7\n12\nabc\n")

	v, err := ReadInt("days ", 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ReadInt("days ", 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = ReadInt("days ", 1, 10, 3)
	assert.ErrorContains(t, err, "between 1 and 10")

	_, err = ReadInt("days ", 1, 10, 3)
	assert.ErrorContains(t, err, "invalid number")
}

func TestReadersReportClosedInput(t *testing.T) {
	withStdin(t, "5")

	v, err := ReadInt("days ", 1, 10, 3)
	require.NoError(t, err, "last line without newline is still read")
	assert.Equal(t, 5, v)

	_, err = ReadInt("days ", 1, 10, 3)
	assert.ErrorIs(t, err, io.EOF)

	_, err = ReadFloat("temperature ", 25.9)
	assert.ErrorIs(t, err, io.EOF)
}

func TestShowMenuExitsOnClosedInput(t *testing.T) {
	withStdin(t, "")

	ShowMenu(context.Background(), nil)
}

func TestShowMenuExitOption(t *testing.T) {
	withStdin(t, "0\n7\n")

	ShowMenu(context.Background(), nil)
}
