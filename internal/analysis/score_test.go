package analysis

import "testing"

func TestDifficultyScore_Bounds(t *testing.T) {
	cases := []struct {
		name     string
		results  int
		interest []float64
	}{
		{"no competition", 0, nil},
		{"negative count", -5, nil},
		{"low", 500, []float64{10, 20}},
		{"medium", 5000, []float64{50}},
		{"high", 60000, []float64{100, 100, 100}},
		{"very high with max interest", 1000000, []float64{100}},
	}
	for _, c := range cases {
		got := DifficultyScore(c.results, c.interest)
		if got < 0 || got > 100 {
			t.Errorf("%s: score %v out of bounds", c.name, got)
		}
	}
}

func TestDifficultyScore_Bands(t *testing.T) {
	if got := DifficultyScore(0, nil); got != 0 {
		t.Errorf("zero results should score 0, got %v", got)
	}
	if got := DifficultyScore(500, nil); got != 10 {
		t.Errorf("sub-1000 results should score 10, got %v", got)
	}
	if got := DifficultyScore(200000, nil); got != 100 {
		t.Errorf("massive results should score 100, got %v", got)
	}
	// Interest adds at most 20 points on top of the competition band.
	if got := DifficultyScore(500, []float64{100, 100}); got != 30 {
		t.Errorf("expected 10 + 20 interest factor = 30, got %v", got)
	}
}

func TestProfitabilityScore_Bounds(t *testing.T) {
	for _, difficulty := range []float64{0, 50, 100, -10, 200} {
		for _, interest := range []float64{0, 50, 100, 500} {
			for _, price := range []float64{0, 3, 7, 15, 40, 99} {
				got := ProfitabilityScore(difficulty, interest, price)
				if got < 0 || got > 100 {
					t.Errorf("score %v out of bounds for (%v, %v, %v)", got, difficulty, interest, price)
				}
			}
		}
	}
}

func TestProfitabilityScore_ZeroVolumeIsFloor(t *testing.T) {
	// With no interest and no price signal, only inverted difficulty remains.
	floor := ProfitabilityScore(100, 0, 0)
	higher := ProfitabilityScore(100, 50, 0)
	if floor >= higher {
		t.Errorf("zero interest should floor the score: floor=%v higher=%v", floor, higher)
	}
	if floor != 10 { // 0*0.4 + 0*0.4 + 50*0.2
		t.Errorf("expected neutral-price floor of 10, got %v", floor)
	}
}

func TestProfitabilityScore_PriceSweetSpot(t *testing.T) {
	sweet := ProfitabilityScore(50, 50, 20)
	low := ProfitabilityScore(50, 50, 2)
	if sweet <= low {
		t.Errorf("sweet-spot price should outscore a bargain price: %v vs %v", sweet, low)
	}
}

func TestScores_Deterministic(t *testing.T) {
	interest := []float64{12, 80, 43, 9}
	for i := 0; i < 5; i++ {
		if a, b := DifficultyScore(4321, interest), DifficultyScore(4321, interest); a != b {
			t.Fatalf("difficulty not deterministic: %v != %v", a, b)
		}
		if a, b := ProfitabilityScore(42, 66, 18), ProfitabilityScore(42, 66, 18); a != b {
			t.Fatalf("profitability not deterministic: %v != %v", a, b)
		}
	}
}

func TestScoreColor_Bands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, ColorSuccess},
		{80, ColorSuccess},
		{70, ColorWarning},
		{45, ColorInfo},
		{10, ColorDanger},
	}
	for _, c := range cases {
		if got := ScoreColor(c.score); got != c.want {
			t.Errorf("ScoreColor(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestCompetitionLevel(t *testing.T) {
	if got := CompetitionLevel(0); got != "No competition" {
		t.Errorf("unexpected level for 0: %q", got)
	}
	if got := CompetitionLevel(75000); got != "Very high competition" {
		t.Errorf("unexpected level for 75000: %q", got)
	}
}
