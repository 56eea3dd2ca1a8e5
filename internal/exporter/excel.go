// Package exporter builds Excel workbooks from the dashboard data.
package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
)

const (
	moviesSheet  = "Movies"
	summarySheet = "Gross Summary"
)

// MovieWorkbook holds the inputs for an export: the filtered rows and
// their pivoted summary.
type MovieWorkbook struct {
	Movies []dataset.Movie
	Table  analysis.PivotTable
}

// WriteTo builds the workbook and streams it to w as an .xlsx file.
func (wb MovieWorkbook) WriteTo(w io.Writer) (int64, error) {
	f, err := wb.build()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(w)
}

// SaveAs builds the workbook and writes it to the given path.
func (wb MovieWorkbook) SaveAs(path string) error {
	f, err := wb.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func (wb MovieWorkbook) build() (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", moviesSheet)

	if err := wb.writeMovies(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := wb.writeSummary(f); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (wb MovieWorkbook) writeMovies(f *excelize.File) error {
	headers := []string{"Year", "Title", "Genre", "Country", "Actor", "Gross"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(moviesSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %q: %w", h, err)
		}
	}

	for i, m := range wb.Movies {
		row := i + 2
		values := []interface{}{m.Year, m.Title, m.Genre, m.Country, m.Name, m.Gross}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(moviesSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write movie row %d: %w", row, err)
			}
		}
	}

	f.SetColWidth(moviesSheet, "B", "B", 36)
	f.SetColWidth(moviesSheet, "E", "E", 24)
	return nil
}

// writeSummary lays out the pivot: one row per year, one column per genre.
func (wb MovieWorkbook) writeSummary(f *excelize.File) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := f.SetCellValue(summarySheet, "A1", "Year"); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, genre := range wb.Table.Genres {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return fmt.Errorf("failed to build summary header cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, cell, genre); err != nil {
			return fmt.Errorf("failed to write genre header %q: %w", genre, err)
		}
	}

	for i, year := range wb.Table.Years {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("failed to build summary cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, cell, year); err != nil {
			return fmt.Errorf("failed to write year %d: %w", year, err)
		}

		for j, genre := range wb.Table.Genres {
			cell, err := excelize.CoordinatesToCellName(j+2, row)
			if err != nil {
				return fmt.Errorf("failed to build summary cell: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, wb.Table.Cells[year][genre]); err != nil {
				return fmt.Errorf("failed to write summary cell: %w", err)
			}
		}
	}

	return nil
}
