package ingest

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"adpilot/internal/repository"
)

const sampleCSV = `Date,Campaign ID,Campaign,Impressions,Clicks,Cost,14 Day Total Sales,14 Day Total Orders,14 Day Total Units,KENP Read,KENP Royalties
2026-07-01,123456,SP - Thriller Box Set,"1,024",12,$4.80,$19.98,2,2,310,"$1.39"
2026-07-02,123456,SP - Thriller Box Set,980,9,$3.60,$0.00,0,0,0,$0.00
,,,,,,,,,,
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d want 2 (blank trailing row skipped)", len(rows))
	}
	r := rows[0]
	if r.CampaignID != "123456" {
		t.Fatalf("campaign=%q", r.CampaignID)
	}
	if !r.Date.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date=%v", r.Date)
	}
	if r.Impressions != 1024 {
		t.Fatalf("impressions=%d want comma-stripped 1024", r.Impressions)
	}
	if r.Spend.String() != "4.8" {
		t.Fatalf("spend=%s want 4.8", r.Spend)
	}
	if r.Sales.String() != "19.98" {
		t.Fatalf("sales=%s", r.Sales)
	}
	if r.PagesRead != 310 || r.PageReadRoyalty.String() != "1.39" {
		t.Fatalf("kenp=%d %s", r.PagesRead, r.PageReadRoyalty)
	}
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("Impressions,Clicks\n1,2\n")); err == nil {
		t.Fatalf("expected error for missing date column")
	}
	if _, err := ParseCSV(strings.NewReader("Date,Impressions\n2026-07-01,1\n")); err == nil {
		t.Fatalf("expected error for missing campaign_id column")
	}
}

func TestParseCSV_BadDate(t *testing.T) {
	csv := "Date,Campaign ID\nsometime,123\n"
	if _, err := ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2026-07-04", "20260704", "07/04/2026"} {
		got, err := parseDate(raw)
		if err != nil {
			t.Fatalf("%q err=%v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q parsed to %v", raw, got)
		}
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cellsByRow := [][]interface{}{
		{"Date", "Campaign ID", "Impressions", "Clicks", "Cost", "14 Day Total Sales", "Units"},
		{"2026-07-01", "654321", 500, 6, 2.4, 9.99, 1},
	}
	for i, row := range cellsByRow {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("err=%v", err)
		}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			t.Fatalf("err=%v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("err=%v", err)
	}

	rows, err := ParseXLSX(&buf)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d want 1", len(rows))
	}
	if rows[0].CampaignID != "654321" || rows[0].Impressions != 500 || rows[0].UnitsSold != 1 {
		t.Fatalf("row=%+v", rows[0])
	}
}

func TestIngestReport_UnsupportedExtension(t *testing.T) {
	// The format check fires before any repository call.
	svc := &Service{Repo: struct{ repository.Repository }{}}
	if _, err := svc.IngestReport(context.Background(), "report.pdf", strings.NewReader("")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
