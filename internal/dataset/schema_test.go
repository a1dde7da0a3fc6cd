package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectReportsFirstMissingColumn(t *testing.T) {
	content := `day,time,LeafCount,hole,temperature,light,pH,TDS,WaterTemp
1,14.30,20,1,25.3,500,6.5,700,23.0
`
	_, err := Preprocess(mustParse(t, content))

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "humidity", missing.Column)
	assert.Contains(t, err.Error(), "humidity")
}

func TestProjectRequiresNormalizedTable(t *testing.T) {
	table := mustParse(t, "datetime,LeafCount,hole,temperature,humidity,light,pH,EC,TDS,WaterTemp\n2024-07-22 14:30:00,20,1,25,60,500,6.5,1.5,700,23\n")
	_, err := Project(table)
	assert.ErrorIs(t, err, ErrNotNormalized)
}

func TestProjectKeepsCanonicalColumnsOnly(t *testing.T) {
	content := `datetime,plant,LeafCount,hole,temperature,humidity,light,pH,EC,TDS,WaterTemp,notes
2024-07-22 14:30:00,lettuce,20,2,25.3,60.5,500,6.5,1.5,700,23.0,ok
`
	series, err := Preprocess(mustParse(t, content))
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, Observation{
		Timestamp:   series[0].Timestamp,
		LeafCount:   20,
		Hole:        2,
		Temperature: 25.3,
		Humidity:    60.5,
		Light:       500,
		PH:          6.5,
		EC:          1.5,
		TDS:         700,
		WaterTemp:   23.0,
	}, series[0])
}

func TestProjectRejectsBlankCells(t *testing.T) {
	content := `day,time,LeafCount,hole,temperature,humidity,light,pH,EC,TDS,WaterTemp
2,14.30,25,1,26.1,61.0,510,6.4,1.6,720,23.2
1,14.30,,1,25.3,60.5,500,6.5,1.5,700,23.0
3,14.30,27,1,NaN,61.0,,6.4,1.6,720,23.2
`
	_, err := Preprocess(mustParse(t, content))

	var missing *MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []int{2, 3, 3}, missing.Rows)
	assert.Equal(t, []string{"LeafCount", "temperature", "light"}, missing.Columns)
	assert.Contains(t, err.Error(), "row 2 (LeafCount)")
}

func TestReadCSVNumbersRows(t *testing.T) {
	table := mustParse(t, "day,time,LeafCount\n1,14.30,20\n2,14.30,\n")
	require.Len(t, table.Records, 2)
	assert.Equal(t, 1, table.Records[0].Row)
	assert.Empty(t, table.Records[0].Missing)
	assert.Equal(t, []string{"LeafCount"}, table.Records[1].Missing)
}
