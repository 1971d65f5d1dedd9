package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pollsim/domain/sampling"
	"pollsim/internal/errors"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urn.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadLabelsFromWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"bead", "weight"},
		{"blue", 1},
		{"red", 2},
		{"Blue", 3},
		{"", 4},
		{"red", 5},
	})

	labels, err := NewDataReader(path).ReadLabels("bead", "blue")
	require.NoError(t, err)
	assert.Equal(t, []sampling.Label{sampling.Positive, sampling.Negative, sampling.Positive, sampling.Negative}, labels)
}

func TestReadLabelsDefaultsToFirstColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"bead"},
		{"blue"},
		{"red"},
	})

	labels, err := NewDataReader(path).ReadLabels("", "blue")
	require.NoError(t, err)
	assert.Len(t, labels, 2)
}

func TestReadLabelsUnknownColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"bead"}, {"blue"}})
	_, err := NewDataReader(path).ReadLabels("colour", "blue")
	assert.ErrorContains(t, err, `column "colour" not found`)
}

func TestReadLabelsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urn.csv")
	require.NoError(t, os.WriteFile(path, []byte("bead\nblue\nblue\nred\nblue\n"), 0o644))

	pop, err := LoadPopulation(ExcelConfig{FilePath: path, PositiveValue: "blue"})
	require.NoError(t, err)
	assert.Equal(t, 4, pop.Size())
	assert.Equal(t, 0.75, pop.TrueProportion())
}

func TestReadDataMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.xlsx")).ReadData()
	assert.ErrorContains(t, err, "file not found")
}

func TestReadDataHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"bead"}})
	_, err := NewDataReader(path).ReadData()
	assert.Error(t, err)
}

func TestLoadPopulationBlankHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urn.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "blue"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "red"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadPopulation(ExcelConfig{FilePath: path, Sheet: "Sheet1", PositiveValue: "blue"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestReadDataCorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urn.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := NewDataReader(path).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestLoadPopulationWithoutLabels(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"bead", "note"}, {"", "empty"}})
	_, err := LoadPopulation(ExcelConfig{FilePath: path, Column: "bead", PositiveValue: "blue"})
	assert.Error(t, err)
}

func TestReportWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	sweep := sampling.SweepResult{
		AssumedProportion: 0.51,
		Points: []sampling.SweepPoint{
			{SampleSize: 100, StandardError: 0.05},
			{SampleSize: 10, StandardError: 0.158},
		},
	}
	trials := []sampling.EstimateResult{
		{PointEstimate: 0.44, StandardError: 0.099, SampleSize: 25},
		{PointEstimate: 0.6, StandardError: 0.098, SampleSize: 25},
	}

	require.NoError(t, NewReportWriter(path).Write(sweep, trials))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sweep", "Trials"}, f.GetSheetList())

	rows, err := f.GetRows("Sweep")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "sample_size", rows[0][0])
	assert.Equal(t, "100", rows[1][0])
	assert.Equal(t, "10", rows[2][0])

	rows, err = f.GetRows("Trials")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"trial", "sample_size", "point_estimate", "standard_error", "spread"}, rows[0])
	assert.Equal(t, "2", rows[2][0])
}

func TestReportWriterSweepOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.xlsx")
	require.NoError(t, NewReportWriter(path).Write(sampling.SweepResult{AssumedProportion: 0.5}, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sweep"}, f.GetSheetList())
}
