package excel

import (
	"fmt"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by Export
const (
	ItemsSheet  = "Items"
	MatrixSheet = "OF matrix"
)

var itemHeader = []interface{}{
	"ID", "Deck", "Question", "Answer", "Interval", "Repetitions", "Ease factor",
	"Failures", "Mean quality", "Total repeats", "Due", "Maturity", "Leech",
}

// Export writes the scheduling state of items, classified at now, and the
// optimal-factor matrix to an .xlsx workbook.
func Export(path string, items []models.Item, m sr.Matrix, cfg sr.Config, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	// Renaming the fresh default sheet cannot fail.
	f.SetSheetName(f.GetSheetName(0), ItemsSheet)
	if err := f.SetSheetRow(ItemsSheet, "A1", &itemHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, item := range items {
		class := cfg.Classify(item.State(), item.DueAt, now)
		row := []interface{}{
			item.ID, item.Deck, item.Question, item.Answer, item.LastInterval, item.Repetitions,
			optional(item.EaseFactor), item.Failures, optional(item.MeanQuality), item.TotalRepeats,
			dueText(item.DueAt), class.Maturity.String(), class.Leech,
		}
		if err := setRow(f, ItemsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(MatrixSheet); err != nil {
		return fmt.Errorf("failed to create matrix sheet: %w", err)
	}
	if err := setRow(f, MatrixSheet, 1, []interface{}{"Repetition", "Ease factor", "Optimal factor"}); err != nil {
		return err
	}
	for i, e := range m.Entries() {
		if err := setRow(f, MatrixSheet, i+2, []interface{}{e.Repetition, e.EaseFactor, e.OptimalFactor}); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func dueText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
