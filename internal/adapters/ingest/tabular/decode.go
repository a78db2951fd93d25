package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"unirank/internal/core/normalize"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format is a supported spreadsheet encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Result is a decoded sheet: the header as read and one Row per data line
type Result struct {
	Header  []string
	Rows    []normalize.Row
	Skipped int
}

// DecodeError reports a payload that could not be read as a sheet
type DecodeError struct {
	Name   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "tabular: " + e.Reason
	if e.Name != "" {
		msg = fmt.Sprintf("tabular: %s: %s", e.Name, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FormatOf maps a file name to its Format by extension
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".xls":
		return FormatXLS, true
	}
	return "", false
}

// Decode reads r in the format implied by name
func Decode(name string, r io.Reader) (Result, error) {
	f, ok := FormatOf(name)
	if !ok {
		return Result{}, &DecodeError{Name: name, Reason: "unsupported file type " + filepath.Ext(name)}
	}
	var (
		res Result
		err error
	)
	switch f {
	case FormatCSV:
		res, err = DecodeCSV(r)
	case FormatXLSX:
		res, err = DecodeXLSX(r)
	case FormatXLS:
		res, err = DecodeXLS(r)
	}
	var de *DecodeError
	if errors.As(err, &de) && de.Name == "" {
		de.Name = name
	}
	return res, err
}

// DecodeCSV reads a comma separated sheet with a header row
func DecodeCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, &DecodeError{Reason: "missing header row"}
	}
	if err != nil {
		return Result{}, &DecodeError{Reason: "unreadable header row", Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if blank(header) {
		return Result{}, &DecodeError{Reason: "empty header row"}
	}

	res := Result{Header: header, Rows: []normalize.Row{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Skipped++
				continue
			}
			return Result{}, &DecodeError{Reason: "read failed", Err: err}
		}
		if row, ok := rowOf(header, rec); ok {
			res.Rows = append(res.Rows, row)
		}
	}
	return res, nil
}

// DecodeXLSX reads the first worksheet of an Office Open XML workbook
func DecodeXLSX(r io.Reader) (Result, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, &DecodeError{Reason: "not an xlsx workbook", Err: err}
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, &DecodeError{Reason: "workbook has no sheets"}
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return Result{}, &DecodeError{Reason: "unreadable sheet " + sheets[0], Err: err}
	}
	return fromGrid(rows)
}

// DecodeXLS reads the first worksheet of a legacy BIFF workbook
func DecodeXLS(r io.Reader) (res Result, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Result{}, &DecodeError{Reason: "read failed", Err: err}
	}
	// the BIFF parser panics on some malformed inputs
	defer func() {
		if p := recover(); p != nil {
			res, err = Result{}, &DecodeError{Reason: fmt.Sprintf("malformed xls workbook (%v)", p)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil {
		return Result{}, &DecodeError{Reason: "not an xls workbook", Err: err}
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Result{}, &DecodeError{Reason: "workbook has no sheets"}
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return fromGrid(grid)
}

// fromGrid treats the first row as the header
func fromGrid(grid [][]string) (Result, error) {
	if len(grid) == 0 || blank(grid[0]) {
		return Result{}, &DecodeError{Reason: "empty header row"}
	}
	header := grid[0]
	res := Result{Header: header, Rows: make([]normalize.Row, 0, len(grid)-1)}
	for _, rec := range grid[1:] {
		if row, ok := rowOf(header, rec); ok {
			res.Rows = append(res.Rows, row)
		}
	}
	return res, nil
}

// rowOf zips header and rec; unnamed columns are dropped and blank lines report !ok
func rowOf(header, rec []string) (normalize.Row, bool) {
	if blank(rec) {
		return nil, false
	}
	row := make(normalize.Row, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if i < len(rec) {
			row[h] = rec[i]
		} else {
			row[h] = ""
		}
	}
	return row, true
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
