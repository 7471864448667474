package export

import (
	"fmt"
	"strings"
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/julisunkan/Ktrend/internal/research"
)

const pdfTableRows = 20

var licenseOnce sync.Once

// LoadPDFLicense registers the unidoc metered key. Safe to call more
// than once; only the first key wins.
func LoadPDFLicense(key string) error {
	var err error
	licenseOnce.Do(func() {
		err = license.SetMeteredKey(key)
	})
	return err
}

// ExportPDF writes the full research report: title, summary statistics,
// a results table, top opportunities and recommendation text.
func (m *Manager) ExportPDF(results []research.KeywordResult) (string, error) {
	path := m.path("kdp_keywords_report", "pdf")

	regular, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return "", err
	}
	bold, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return "", err
	}

	c := creator.New()
	c.SetPageMargins(40, 40, 50, 50)

	title := c.NewParagraph("KDP Keyword Research Report")
	title.SetFont(bold)
	title.SetFontSize(24)
	title.SetTextAlignment(creator.TextAlignmentCenter)
	title.SetMargins(0, 0, 0, 30)
	if err := c.Draw(title); err != nil {
		return "", err
	}

	meta := c.NewParagraph(fmt.Sprintf(
		"Generated: %s\nTotal Keywords Analyzed: %d\nReport Type: Comprehensive Keyword Analysis",
		m.now().Format("2006-01-02 15:04:05"), len(results)))
	meta.SetFont(regular)
	meta.SetFontSize(11)
	meta.SetMargins(0, 0, 0, 20)
	if err := c.Draw(meta); err != nil {
		return "", err
	}

	if len(results) > 0 {
		if err := drawSummary(c, regular, results); err != nil {
			return "", err
		}
	}
	if err := drawResultsTable(c, regular, bold, results); err != nil {
		return "", err
	}
	if err := drawOpportunities(c, regular, bold, results); err != nil {
		return "", err
	}
	if err := drawRecommendations(c, regular, bold, results); err != nil {
		return "", err
	}

	if err := c.WriteToFile(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	m.logger.WithField("path", path).Info("[Export] PDF written")
	return path, nil
}

func drawSummary(c *creator.Creator, font *model.PdfFont, results []research.KeywordResult) error {
	var sumDifficulty, sumProfitability float64
	highPotential := 0
	for _, r := range results {
		sumDifficulty += r.DifficultyScore
		sumProfitability += r.ProfitabilityScore
		if r.ProfitabilityScore >= 70 {
			highPotential++
		}
	}
	n := float64(len(results))
	text := fmt.Sprintf(
		"Summary Statistics:\n"+
			"- Average Difficulty Score: %.1f/100\n"+
			"- Average Profitability Score: %.1f/100\n"+
			"- High Potential Keywords: %d\n"+
			"- Recommended Focus: %s",
		sumDifficulty/n, sumProfitability/n, highPotential, strategyRecommendation(results))

	p := c.NewParagraph(text)
	p.SetFont(font)
	p.SetFontSize(11)
	p.SetMargins(0, 0, 0, 20)
	return c.Draw(p)
}

func drawResultsTable(c *creator.Creator, regular, bold *model.PdfFont, results []research.KeywordResult) error {
	heading := c.NewParagraph("Detailed Keyword Analysis")
	heading.SetFont(bold)
	heading.SetFontSize(16)
	heading.SetMargins(0, 0, 0, 12)
	if err := c.Draw(heading); err != nil {
		return err
	}

	table := c.NewTable(5)
	if err := table.SetColumnWidths(0.36, 0.15, 0.17, 0.18, 0.14); err != nil {
		return err
	}

	headerBg := creator.ColorRGBFrom8bit(110, 110, 110)
	for _, h := range []string{"Keyword", "Difficulty", "Profitability", "Competition", "Avg Price"} {
		p := c.NewParagraph(h)
		p.SetFont(bold)
		p.SetFontSize(11)
		p.SetColor(creator.ColorRGBFrom8bit(255, 255, 255))
		cell := table.NewCell()
		cell.SetBackgroundColor(headerBg)
		cell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
		if err := cell.SetContent(p); err != nil {
			return err
		}
	}

	rows := results
	if len(rows) > pdfTableRows {
		rows = rows[:pdfTableRows]
	}
	for _, r := range rows {
		keyword := r.Keyword
		if len(keyword) > 30 {
			keyword = keyword[:30]
		}
		cols := []string{
			keyword,
			fmt.Sprintf("%.1f", r.DifficultyScore),
			fmt.Sprintf("%.1f", r.ProfitabilityScore),
			orUnknown(r.Market.CompetitionLevel),
			fmt.Sprintf("$%.2f", r.Market.AvgPrice),
		}
		for _, col := range cols {
			p := c.NewParagraph(col)
			p.SetFont(regular)
			p.SetFontSize(10)
			cell := table.NewCell()
			cell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
			if err := cell.SetContent(p); err != nil {
				return err
			}
		}
	}
	table.SetMargins(0, 0, 0, 20)
	return c.Draw(table)
}

func drawOpportunities(c *creator.Creator, regular, bold *model.PdfFont, results []research.KeywordResult) error {
	var picks []research.KeywordResult
	for _, r := range results {
		if r.ProfitabilityScore >= 70 && r.DifficultyScore <= 60 {
			picks = append(picks, r)
		}
	}
	if len(picks) == 0 {
		return nil
	}
	if len(picks) > 5 {
		picks = picks[:5]
	}

	heading := c.NewParagraph("Top Opportunities")
	heading.SetFont(bold)
	heading.SetFontSize(16)
	heading.SetMargins(0, 0, 0, 12)
	if err := c.Draw(heading); err != nil {
		return err
	}

	for _, r := range picks {
		p := c.NewParagraph(fmt.Sprintf(
			"%s\nProfitability: %.1f/100 | Difficulty: %.1f/100\nCompetition: %s",
			r.Keyword, r.ProfitabilityScore, r.DifficultyScore, orUnknown(r.Market.CompetitionLevel)))
		p.SetFont(regular)
		p.SetFontSize(11)
		p.SetMargins(0, 0, 0, 8)
		if err := c.Draw(p); err != nil {
			return err
		}
	}
	return nil
}

func drawRecommendations(c *creator.Creator, regular, bold *model.PdfFont, results []research.KeywordResult) error {
	heading := c.NewParagraph("Recommendations")
	heading.SetFont(bold)
	heading.SetFontSize(16)
	heading.SetMargins(0, 0, 0, 12)
	if err := c.Draw(heading); err != nil {
		return err
	}

	p := c.NewParagraph(recommendationsText(results))
	p.SetFont(regular)
	p.SetFontSize(11)
	return c.Draw(p)
}

func strategyRecommendation(results []research.KeywordResult) string {
	if len(results) == 0 {
		return "No data available"
	}
	highPotential := 0
	highCompetition := 0
	for _, r := range results {
		if r.ProfitabilityScore >= 70 {
			highPotential++
		}
		if r.DifficultyScore >= 80 {
			highCompetition++
		}
	}
	switch {
	case float64(highPotential) > float64(len(results))*0.3:
		return "Strong opportunities identified - focus on high-potential keywords"
	case float64(highCompetition) > float64(len(results))*0.5:
		return "High competition market - consider long-tail variations"
	default:
		return "Mixed opportunities - diversify keyword strategy"
	}
}

func recommendationsText(results []research.KeywordResult) string {
	if len(results) == 0 {
		return "No recommendations available - please analyze some keywords first."
	}

	var recs []string

	var sumDifficulty float64
	highProfit := 0
	for _, r := range results {
		sumDifficulty += r.DifficultyScore
		if r.ProfitabilityScore >= 70 {
			highProfit++
		}
	}
	if sumDifficulty/float64(len(results)) > 70 {
		recs = append(recs, "- Consider targeting more specific, long-tail keyword variations to reduce competition.")
	}
	if highProfit > 0 {
		recs = append(recs, fmt.Sprintf("- Focus your content creation on the %d high-profitability keywords identified.", highProfit))
	}

	var priceSum float64
	priced := 0
	for _, r := range results {
		if r.Market.AvgPrice > 0 {
			priceSum += r.Market.AvgPrice
			priced++
		}
	}
	if priced > 0 {
		avgPrice := priceSum / float64(priced)
		if avgPrice < 10 {
			recs = append(recs, "- Consider premium pricing strategies as the market shows low average prices.")
		} else if avgPrice > 30 {
			recs = append(recs, "- Market shows high price tolerance - consider comprehensive, high-value content.")
		}
	}

	lowCompetition := 0
	highInterest := 0
	for _, r := range results {
		if r.Market.ResultsCount < 1000 {
			lowCompetition++
		}
		if r.Trends.AverageInterest > 50 {
			highInterest++
		}
	}
	if lowCompetition > 0 {
		recs = append(recs, fmt.Sprintf("- %d keywords show low competition - prioritize these for quick market entry.", lowCompetition))
	}
	if highInterest > 0 {
		recs = append(recs, fmt.Sprintf("- %d keywords show strong search interest - time-sensitive opportunities.", highInterest))
	}

	if len(recs) == 0 {
		recs = append(recs,
			"- Continue researching to find more targeted keyword opportunities.",
			"- Consider expanding your keyword list with more specific, niche terms.")
	}
	return strings.Join(recs, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
