package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/julisunkan/Ktrend/internal/research"
)

var csvHeader = []string{
	"keyword",
	"difficulty_score",
	"profitability_score",
	"search_results_count",
	"avg_price",
	"avg_reviews",
	"competition_level",
	"average_interest",
	"related_queries_top",
	"categories",
}

// ExportCSV writes one row per keyword with the flattened score and
// market columns.
func (m *Manager) ExportCSV(results []research.KeywordResult) (string, error) {
	path := m.path("kdp_keywords", "csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range results {
		top := r.Trends.RelatedQueries.Top
		if len(top) > 5 {
			top = top[:5]
		}
		row := []string{
			r.Keyword,
			fmt.Sprintf("%.1f", r.DifficultyScore),
			fmt.Sprintf("%.1f", r.ProfitabilityScore),
			fmt.Sprintf("%d", r.Market.ResultsCount),
			fmt.Sprintf("%.2f", r.Market.AvgPrice),
			fmt.Sprintf("%.1f", r.Market.AvgReviews),
			r.Market.CompetitionLevel,
			fmt.Sprintf("%.1f", r.Trends.AverageInterest),
			strings.Join(top, ", "),
			strings.Join(r.Market.Categories, ", "),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	m.logger.WithField("path", path).Info("[Export] CSV written")
	return path, nil
}
