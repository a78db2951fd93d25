package tabular

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"unirank/internal/platform/testkit"

	"github.com/xuri/excelize/v2"
)

func TestTemplate_SheetHeaderAndExampleRow(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &now, func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) })

	b, err := Template()
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"Template"}) {
		t.Fatalf("sheets = %q", got)
	}
	rows, err := f.GetRows("Template")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + one example", len(rows))
	}
	wantHeader := []string{"Rank", "University", "Country", "Research", "Reputation",
		"Employment", "International", "Total_Score", "Star_Rating", "Year"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("header = %q", rows[0])
	}
	wantExample := []string{"1", "Example University", "Example Country",
		"90.1", "90.2", "90.3", "90.4", "95.5", "5 Stars", "2031"}
	if !reflect.DeepEqual(rows[1], wantExample) {
		t.Fatalf("example = %q", rows[1])
	}
}
