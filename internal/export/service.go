package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/history"
)

// Service produces XLSX bytes from analysis history rows.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// HistoryXLSX returns an XLSX workbook (as bytes) for the given entries,
// one row per analysis, newest first as provided.
func (s *Service) HistoryXLSX(entries []history.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Analyses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Analyzed At",
		"Filename",
		"Source",
		"Top Title",
		"Top Score",
		"All Titles",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		topTitle := ""
		topScore := ""
		if len(e.Titles) > 0 {
			topTitle = e.Titles[0]
			if score, ok := e.Scores[topTitle]; ok {
				topScore = fmt.Sprintf("%.2f", score)
			}
		}

		write(1, e.CreatedAt.Format("2006-01-02 15:04:05"))
		write(2, e.Filename)
		write(3, e.Source)
		write(4, topTitle)
		write(5, topScore)
		write(6, strings.Join(e.Titles, "; "))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 32) // filename
	_ = f.SetColWidth(sheet, "C", "C", 10) // source
	_ = f.SetColWidth(sheet, "D", "D", 40) // top title
	_ = f.SetColWidth(sheet, "E", "E", 10) // score
	_ = f.SetColWidth(sheet, "F", "F", 80) // all titles

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
