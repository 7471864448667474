package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julisunkan/Ktrend/internal/research"
)

const (
	sheetAnalysis = "Keyword Analysis"
	sheetBooks    = "Top Competing Books"
	sheetQueries  = "Related Queries"

	booksPerKeyword   = 5
	queriesPerKeyword = 10
)

// ExportExcel writes a three-sheet workbook: the flattened analysis,
// the top competing books per keyword, and the related queries.
func (m *Manager) ExportExcel(results []research.KeywordResult) (string, error) {
	path := m.path("kdp_keywords", "xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetAnalysis)
	if err := writeAnalysisSheet(f, results); err != nil {
		return "", err
	}
	if err := writeBooksSheet(f, results); err != nil {
		return "", err
	}
	if err := writeQueriesSheet(f, results); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	m.logger.WithField("path", path).Info("[Export] Excel written")
	return path, nil
}

func writeAnalysisSheet(f *excelize.File, results []research.KeywordResult) error {
	header := []interface{}{
		"Keyword", "Difficulty Score", "Profitability Score", "Search Results Count",
		"Average Price", "Average Reviews", "Competition Level", "Average Interest", "Categories",
	}
	if err := f.SetSheetRow(sheetAnalysis, "A1", &header); err != nil {
		return err
	}
	for i, r := range results {
		row := []interface{}{
			r.Keyword,
			r.DifficultyScore,
			r.ProfitabilityScore,
			r.Market.ResultsCount,
			r.Market.AvgPrice,
			r.Market.AvgReviews,
			r.Market.CompetitionLevel,
			r.Trends.AverageInterest,
			strings.Join(r.Market.Categories, ", "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetAnalysis, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeBooksSheet(f *excelize.File, results []research.KeywordResult) error {
	if _, err := f.NewSheet(sheetBooks); err != nil {
		return err
	}
	header := []interface{}{"Keyword", "Book Title", "Price", "Reviews Count", "Rating", "Format"}
	if err := f.SetSheetRow(sheetBooks, "A1", &header); err != nil {
		return err
	}
	rowNum := 2
	for _, r := range results {
		books := r.Market.TopBooks
		if len(books) > booksPerKeyword {
			books = books[:booksPerKeyword]
		}
		for _, b := range books {
			row := []interface{}{r.Keyword, b.Title, b.Price, b.ReviewsCount, b.Rating, b.Format}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheetBooks, cell, &row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeQueriesSheet(f *excelize.File, results []research.KeywordResult) error {
	if _, err := f.NewSheet(sheetQueries); err != nil {
		return err
	}
	header := []interface{}{"Original Keyword", "Related Query", "Type"}
	if err := f.SetSheetRow(sheetQueries, "A1", &header); err != nil {
		return err
	}
	rowNum := 2
	for _, r := range results {
		for _, q := range capStrings(r.Trends.RelatedQueries.Top, queriesPerKeyword) {
			row := []interface{}{r.Keyword, q, "Top"}
			if err := f.SetSheetRow(sheetQueries, fmt.Sprintf("A%d", rowNum), &row); err != nil {
				return err
			}
			rowNum++
		}
		for _, q := range capStrings(r.Trends.RelatedQueries.Rising, queriesPerKeyword) {
			row := []interface{}{r.Keyword, q, "Rising"}
			if err := f.SetSheetRow(sheetQueries, fmt.Sprintf("A%d", rowNum), &row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func capStrings(s []string, max int) []string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
