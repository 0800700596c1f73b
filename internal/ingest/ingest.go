// Package ingest parses offline performance reports (CSV exports and XLSX
// bulk sheets) into daily metric rows and upserts them last-write-wins.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"adpilot/internal/models"
	"adpilot/internal/repository"
)

type Service struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// IngestReport parses the uploaded file by extension and stores its rows.
// Returns the number of metric rows written.
func (s *Service) IngestReport(ctx context.Context, filename string, r io.Reader) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, fmt.Errorf("ingest service not configured")
	}
	var (
		rows []models.DailyMetric
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = ParseCSV(r)
	case ".xlsx":
		rows, err = ParseXLSX(r)
	default:
		return 0, fmt.Errorf("unsupported report format %q", filepath.Ext(filename))
	}
	if err != nil {
		return 0, err
	}
	if err := s.Repo.UpsertDailyMetrics(ctx, rows); err != nil {
		return 0, err
	}
	if s.Logger != nil {
		s.Logger.Info("report ingested",
			zap.String("file", filename),
			zap.Int("rows", len(rows)),
		)
	}
	return len(rows), nil
}

func ParseCSV(r io.Reader) ([]models.DailyMetric, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty report")
	}
	return parseTable(records[0], records[1:])
}

func ParseXLSX(r io.Reader) ([]models.DailyMetric, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty report")
	}
	return parseTable(records[0], records[1:])
}

// Column names as they appear in platform exports, normalized. Aliases cover
// both the raw API names and the human-facing report headers.
var headerAliases = map[string]string{
	"cost":                "spend",
	"14_day_total_sales":  "sales",
	"14_day_total_orders": "orders",
	"14_day_total_units":  "units_sold",
	"units":               "units_sold",
	"kenp_read":           "pages_read",
	"kenp_royalties":      "page_read_royalty",
	"campaign":            "campaign_name",
}

func parseTable(header []string, rows [][]string) ([]models.DailyMetric, error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[canonicalHeader(h)] = i
	}
	if _, ok := cols["date"]; !ok {
		return nil, fmt.Errorf("report is missing a date column")
	}
	if _, ok := cols["campaign_id"]; !ok {
		return nil, fmt.Errorf("report is missing a campaign_id column")
	}

	out := make([]models.DailyMetric, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		date, err := parseDate(cell(row, cols, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		campaignID := strings.TrimSpace(cell(row, cols, "campaign_id"))
		if campaignID == "" {
			return nil, fmt.Errorf("row %d: empty campaign_id", i+2)
		}
		m := models.DailyMetric{
			CampaignID:      campaignID,
			Date:            date,
			Impressions:     parseInt(cell(row, cols, "impressions")),
			Clicks:          parseInt(cell(row, cols, "clicks")),
			Orders:          parseInt(cell(row, cols, "orders")),
			UnitsSold:       parseInt(cell(row, cols, "units_sold")),
			Spend:           parseMoney(cell(row, cols, "spend")),
			Sales:           parseMoney(cell(row, cols, "sales")),
			PagesRead:       parseInt(cell(row, cols, "pages_read")),
			PageReadRoyalty: parseMoney(cell(row, cols, "page_read_royalty")),
		}
		out = append(out, m)
	}
	return out, nil
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "").Replace(h)
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return h
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var dateLayouts = []string{"2006-01-02", "20060102", "01/02/2006"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func parseInt(raw string) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseMoney(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}
