package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"pollsim/domain/sampling"
)

const (
	sweepSheet  = "Sweep"
	trialsSheet = "Trials"
)

// ReportWriter exports sweep and trial results as an xlsx workbook
type ReportWriter struct {
	filePath string
}

// NewReportWriter creates a writer targeting filePath
func NewReportWriter(filePath string) *ReportWriter {
	return &ReportWriter{filePath: filePath}
}

// Write saves a workbook with a Sweep sheet and, when trials are given, a Trials sheet
func (w *ReportWriter) Write(sweep sampling.SweepResult, trials []sampling.EstimateResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sweepSheet); err != nil {
		return fmt.Errorf("failed to name sweep sheet: %w", err)
	}
	if err := writeSweep(f, sweep); err != nil {
		return err
	}

	if len(trials) > 0 {
		if _, err := f.NewSheet(trialsSheet); err != nil {
			return fmt.Errorf("failed to create trials sheet: %w", err)
		}
		if err := writeTrials(f, trials); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[ReportWriter] wrote %d sweep points and %d trials to %s", len(sweep.Points), len(trials), w.filePath)
	return nil
}

func writeSweep(f *excelize.File, sweep sampling.SweepResult) error {
	header := []interface{}{"sample_size", "standard_error", "assumed_proportion"}
	if err := f.SetSheetRow(sweepSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write sweep header: %w", err)
	}
	for i, p := range sweep.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.SampleSize, p.StandardError, sweep.AssumedProportion}
		if err := f.SetSheetRow(sweepSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sweep row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeTrials(f *excelize.File, trials []sampling.EstimateResult) error {
	header := []interface{}{"trial", "sample_size", "point_estimate", "standard_error", "spread"}
	if err := f.SetSheetRow(trialsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write trials header: %w", err)
	}
	for i, r := range trials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, r.SampleSize, r.PointEstimate, r.StandardError, r.Spread()}
		if err := f.SetSheetRow(trialsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write trial row %d: %w", i+1, err)
		}
	}
	return nil
}
