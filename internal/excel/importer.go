package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drillbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

var errSkipRow = errors.New("skipping row")

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	QuestionColumn string // Column with the question
	AnswerColumn   string // Column with the answer
	DeckColumn     string // Column with the deck, empty to use DefaultDeck
	DefaultDeck    string
	SheetName      string // Name of the sheet to import, empty for the first sheet
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		QuestionColumn: "A",
		AnswerColumn:   "B",
		DeckColumn:     "C",
		DefaultDeck:    "default",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ItemUpserter stores imported items
type ItemUpserter interface {
	Upsert(ctx context.Context, item *models.Item) error
}

// ImportItems imports items from an Excel or CSV file. Existing items with
// the same deck and question keep their schedule.
func ImportItems(ctx context.Context, repo ItemUpserter, config ImportConfig) (*ImportResult, error) {
	if filepath.Ext(strings.ToLower(config.FilePath)) == ".csv" {
		return importFromCSV(ctx, repo, config)
	}
	return importFromExcel(ctx, repo, config)
}

// importFromExcel imports items from an Excel file
func importFromExcel(ctx context.Context, repo ItemUpserter, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		deck := cell(row, config.DeckColumn)
		if deck == "" {
			deck = config.DefaultDeck
		}
		processRow(ctx, repo, result, i+1, deck, cell(row, config.QuestionColumn), cell(row, config.AnswerColumn))
	}
	return result, nil
}

// importFromCSV imports items from a CSV file. A row with only its first
// field set starts a new deck for the rows that follow it.
func importFromCSV(ctx context.Context, repo ItemUpserter, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	currentDeck := config.DefaultDeck
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if rowNum < config.StartRow {
			continue
		}

		if len(row) >= 1 && strings.TrimSpace(row[0]) != "" && strings.Join(row[1:], "") == "" {
			currentDeck = strings.Trim(strings.TrimSpace(row[0]), "\"")
			continue
		}

		deck := cell(row, config.DeckColumn)
		if deck == "" {
			deck = currentDeck
		}
		processRow(ctx, repo, result, rowNum, deck, cell(row, config.QuestionColumn), cell(row, config.AnswerColumn))
	}
	return result, nil
}

func processRow(ctx context.Context, repo ItemUpserter, result *ImportResult, rowNum int, deck, question, answer string) {
	result.TotalProcessed++
	err := storeItem(ctx, repo, deck, question, answer)
	switch {
	case errors.Is(err, errSkipRow):
		result.Skipped++
	case err != nil:
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
	default:
		result.Imported++
	}
}

func storeItem(ctx context.Context, repo ItemUpserter, deck, question, answer string) error {
	if question == "" && answer == "" {
		return errSkipRow
	}
	if question == "" || answer == "" {
		return fmt.Errorf("question and answer are both required")
	}
	if deck == "" {
		return fmt.Errorf("no deck given")
	}
	return repo.Upsert(ctx, models.NewItem(deck, question, answer))
}

// cell returns the trimmed value of column in row, or "" when absent.
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
