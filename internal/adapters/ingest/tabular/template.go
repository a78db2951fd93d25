package tabular

import (
	"time"

	"unirank/internal/core/normalize"

	"github.com/xuri/excelize/v2"
)

const (
	// TemplateName is the download name of the import template
	TemplateName = "university_template.xlsx"
	// TemplateSheet is the single sheet of the template workbook
	TemplateSheet = "Template"
	// ContentTypeXLSX is the media type of xlsx payloads
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var now = time.Now

// TemplateHeader is the header row of the import template
func TemplateHeader() []string {
	out := make([]string, 0, len(normalize.Fields))
	for _, f := range normalize.Fields {
		out = append(out, normalize.Aliases(f)[1])
	}
	return out
}

// Template builds the xlsx an administrator fills in for an upload
func Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return nil, err
	}

	header := TemplateHeader()
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	example := []any{
		1, "Example University", "Example Country",
		90.1, 90.2, 90.3, 90.4, 95.5,
		"5 Stars", now().Year(),
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &hdr); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(TemplateSheet, "A2", &example); err != nil {
		return nil, err
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(TemplateSheet, "A", last, 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
