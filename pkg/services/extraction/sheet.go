package extraction

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// rowsToLabeled takes the first cell of each row as the label and the first
// non-empty cell after it as the value.
func rowsToLabeled(rows [][]string, into map[string]string) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		label := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		if label == "" {
			continue
		}
		if _, seen := into[label]; seen {
			continue
		}
		for _, cell := range row[1:] {
			if v := strings.TrimSpace(cell); v != "" {
				into[label] = v
				break
			}
		}
	}
}

type csvExtractor struct {
	now Clock
}

// NewCSVExtractor reads label,value exports from accounting software.
func NewCSVExtractor(now Clock) Extractor {
	return &csvExtractor{now: now}
}

func (e *csvExtractor) Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error) {
	r := csv.NewReader(bytes.NewReader(doc.Content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return domain.RawFinancialExtract{}, fmt.Errorf("read csv %s: %w", doc.Name, err)
	}

	labeled := make(map[string]string)
	rowsToLabeled(rows, labeled)
	values := resolve(doc.Type, labeled)

	zerolog.Ctx(ctx).Debug().
		Str("file", doc.Name).
		Int("rows", len(rows)).
		Int("fields", len(values)).
		Msg("parsed csv document")
	return newExtract(doc, domain.SourceAPI, sheetConfidence, e.now, values), nil
}

type excelExtractor struct {
	now Clock
}

// NewExcelExtractor reads label/value rows from every sheet of a workbook.
// Earlier sheets win when a label repeats.
func NewExcelExtractor(now Clock) Extractor {
	return &excelExtractor{now: now}
}

func (e *excelExtractor) Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error) {
	logger := zerolog.Ctx(ctx)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	if err != nil {
		return domain.RawFinancialExtract{}, fmt.Errorf("open workbook %s: %w", doc.Name, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("file", doc.Name).Msg("failed to close workbook")
		}
	}()

	labeled := make(map[string]string)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return domain.RawFinancialExtract{}, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		rowsToLabeled(rows, labeled)
	}
	values := resolve(doc.Type, labeled)

	logger.Debug().
		Str("file", doc.Name).
		Int("sheets", len(f.GetSheetList())).
		Int("fields", len(values)).
		Msg("parsed workbook")
	return newExtract(doc, domain.SourceAPI, sheetConfidence, e.now, values), nil
}
