package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVKeepsHeaderAndStripsBOM(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\xef\xbb\xbfday, time ,LeafCount\n1,14.30,20\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"day", "time", "LeafCount"}, table.Header)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "1", table.Records[0].Day)
	assert.Equal(t, "14.30", table.Records[0].Time)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ReadCSV(strings.NewReader("day,time,LeafCount\n"))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTemplateIsAValidInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "datetime,LeafCount,hole,temperature,humidity,light,pH,EC,TDS,WaterTemp\n"))

	table, err := ReadCSV(&buf)
	require.NoError(t, err)
	series, err := Preprocess(table)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 2, series.UniqueDays())
	assert.Equal(t, []float64{20, 25}, series.LeafCounts())
}

func TestWriteTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "template_hydroponic.csv")
	require.NoError(t, WriteTemplateFile(path))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
