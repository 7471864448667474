package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/julisunkan/Ktrend/internal/marketplace"
	"github.com/julisunkan/Ktrend/internal/research"
	"github.com/julisunkan/Ktrend/internal/trends"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	m := NewManager(t.TempDir(), logger)
	m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func sampleResults() []research.KeywordResult {
	return []research.KeywordResult{
		{
			Keyword:            "vegan cookbook",
			Expanded:           []string{"vegan cookbook for beginners"},
			DifficultyScore:    42.5,
			ProfitabilityScore: 71.2,
			ScoreColor:         "warning",
			Trends: trends.Data{
				AverageInterest: 63.4,
				RelatedQueries: trends.RelatedQueries{
					Top:    []string{"vegan recipes", "plant based cookbook"},
					Rising: []string{"vegan air fryer"},
				},
			},
			Market: marketplace.MarketData{
				ResultsCount:     12000,
				AvgPrice:         15.99,
				AvgReviews:       820,
				CompetitionLevel: "Medium competition",
				Categories:       []string{"Cooking & Food"},
				TopBooks: []marketplace.Book{
					{Title: "The Easy Vegan Cookbook", Price: 14.99, ReviewsCount: 2314, Rating: 4.6, Format: "Paperback"},
				},
			},
		},
		{
			Keyword:            "quantum knitting",
			DifficultyScore:    5,
			ProfitabilityScore: 55,
			Market:             marketplace.MarketData{ResultsCount: 120, CompetitionLevel: "Low competition"},
		},
	}
}

func TestExportCSV(t *testing.T) {
	m := testManager(t)
	path, err := m.ExportCSV(sampleResults())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "keyword" || records[0][6] != "competition_level" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "vegan cookbook" || records[1][3] != "12000" {
		t.Errorf("row = %v", records[1])
	}
	if records[1][8] != "vegan recipes, plant based cookbook" {
		t.Errorf("related queries column = %q", records[1][8])
	}
}

func TestExportCSV_EmptyResults(t *testing.T) {
	m := testManager(t)
	path, err := m.ExportCSV(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("empty export should still be valid csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d rows", len(records))
	}
}

func TestExportExcel(t *testing.T) {
	m := testManager(t)
	path, err := m.ExportExcel(sampleResults())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{sheetAnalysis: false, sheetBooks: false, sheetQueries: false}
	for _, s := range sheets {
		want[s] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing sheet %q in %v", name, sheets)
		}
	}

	kw, err := f.GetCellValue(sheetAnalysis, "A2")
	if err != nil || kw != "vegan cookbook" {
		t.Errorf("A2 = %q, %v", kw, err)
	}
	bookTitle, _ := f.GetCellValue(sheetBooks, "B2")
	if bookTitle != "The Easy Vegan Cookbook" {
		t.Errorf("book title = %q", bookTitle)
	}
	queryType, _ := f.GetCellValue(sheetQueries, "C4")
	if queryType != "Rising" {
		t.Errorf("third query row type = %q, want Rising", queryType)
	}
}

func TestExportExcel_EmptyResults(t *testing.T) {
	m := testManager(t)
	path, err := m.ExportExcel(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("empty export should still be a valid workbook: %v", err)
	}
	defer f.Close()
	header, _ := f.GetCellValue(sheetAnalysis, "A1")
	if header != "Keyword" {
		t.Errorf("header = %q", header)
	}
}

// PDF generation needs a unidoc license key, so these tests only run
// when one is configured.
func requirePDFLicense(t *testing.T) {
	t.Helper()
	if os.Getenv("UNIDOC_LICENSE_API_KEY") == "" {
		t.Skip("set UNIDOC_LICENSE_API_KEY to run PDF export tests")
	}
	if err := LoadPDFLicense(os.Getenv("UNIDOC_LICENSE_API_KEY")); err != nil {
		t.Fatalf("license: %v", err)
	}
}

func TestExportPDF(t *testing.T) {
	requirePDFLicense(t)
	m := testManager(t)
	path, err := m.ExportPDF(sampleResults())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Errorf("output is not a PDF (starts %q)", raw[:8])
	}
}

func TestExportPDF_EmptyResults(t *testing.T) {
	requirePDFLicense(t)
	m := testManager(t)
	path, err := m.ExportPDF(nil)
	if err != nil {
		t.Fatalf("empty export should succeed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	m := testManager(t)
	if _, err := m.Export("docx", nil); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestTimestampedFilenames(t *testing.T) {
	m := testManager(t)
	path, err := m.ExportCSV(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(path, "kdp_keywords_20240301_120000.csv") {
		t.Errorf("path = %q", path)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("csv"); got != "text/csv" {
		t.Errorf("csv = %q", got)
	}
	if got := ContentType("pdf"); got != "application/pdf" {
		t.Errorf("pdf = %q", got)
	}
	if got := ContentType("docx"); got != "" {
		t.Errorf("unknown format should have empty type, got %q", got)
	}
}
