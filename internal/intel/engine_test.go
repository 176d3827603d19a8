package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliver/market-intel/internal/models"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedEngine() *Engine {
	return testEngine().WithClock(func() time.Time { return testNow })
}

func deadlineIn(days int) *time.Time {
	d := testNow.Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func TestCalculateBidScore_StrongFit(t *testing.T) {
	e := fixedEngine()
	opp := models.Opportunity{
		ID:          "opp-1",
		Title:       "Station Upgrade",
		Sector:      "rail",
		Region:      "london",
		Client:      "Network Rail",
		Value:       60_000_000,
		BidDeadline: deadlineIn(45),
	}

	result := e.CalculateBidScore(opp, Context{ExistingClients: []string{"Network Rail"}})

	require.Equal(t, Breakdown{
		SectorFit:          95,
		RegionFit:          90,
		ValueFit:           95,
		CompetitionLevel:   45,
		ClientRelationship: 90,
		Timing:             95,
	}, result.Scores)

	// 95*.25 + 90*.15 + 95*.20 + 45*.15 + 90*.15 + 95*.10 = 86.0
	assert.Equal(t, 86, result.TotalScore)
	assert.Equal(t, "Strong Pursuit", result.Recommendation.Label)
	assert.Equal(t, ActionPursue, result.Recommendation.Action)

	// rail win rate 0.35 * 1.5 = 52.5, capped at 45
	assert.Equal(t, 45, result.WinProbability)
	assert.Equal(t, IntensityHigh, result.CompetitorAnalysis.CompetitiveIntensity)
	assert.NotEmpty(t, result.StrategicInsights)
}

func TestCalculateBidScore_SweetSpotBoundary(t *testing.T) {
	e := fixedEngine()
	opp := models.Opportunity{
		Sector:      "rail",
		Region:      "london",
		Client:      "Network Rail",
		Value:       50_000_000,
		BidDeadline: deadlineIn(45),
	}

	result := e.CalculateBidScore(opp, Context{ExistingClients: []string{"Network Rail"}})

	// At exactly 50M the high-value derate does not apply.
	assert.Equal(t, 50, result.Scores.CompetitionLevel)
	// 95*.25 + 90*.15 + 95*.20 + 50*.15 + 90*.15 + 95*.10 = 86.75
	assert.Equal(t, 87, result.TotalScore)
}

func TestCalculateBidScore_NeutralDefaults(t *testing.T) {
	e := fixedEngine()

	result := e.CalculateBidScore(models.Opportunity{Sector: "defence"}, Context{})
	assert.Equal(t, 40, result.Scores.SectorFit)
	assert.Equal(t, 50, result.Scores.RegionFit)
	assert.Equal(t, 50, result.Scores.ValueFit)
	assert.Equal(t, 50, result.Scores.ClientRelationship)
	assert.Equal(t, 50, result.Scores.Timing)
}

func TestEstimateWinProbability(t *testing.T) {
	e := testEngine()
	tests := []struct {
		name   string
		score  float64
		sector string
		want   int
	}{
		{"expert sector capped", 86, "rail", 45},
		{"moderate sector high score", 86, "maritime", 30},
		{"moderate sector mid score", 60, "maritime", 20},
		{"moderate sector low score", 40, "maritime", 14},
		{"unknown sector fallback", 60, "defence", 15},
		{"threshold 85", 85, "maritime", 30},
		{"threshold 70", 70, "maritime", 24},
		{"threshold 55", 55, "maritime", 20},
		// Raw totals just under a threshold stay in the lower band even
		// though they round up to the threshold as a display score.
		{"just under 85", 84.7, "maritime", 24},
		{"just under 70", 69.6, "maritime", 20},
		{"just under 55", 54.5, "maritime", 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.estimateWinProbability(tt.score, tt.sector))
		})
	}
}

func TestWinProbabilityNeverExceedsCap(t *testing.T) {
	e := testEngine()
	for score := 0; score <= 100; score++ {
		for sector := range DefaultProfile().Expertise {
			assert.LessOrEqual(t, e.estimateWinProbability(float64(score), sector), winProbabilityCap)
		}
	}
}

func TestRecommendationBands(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{100, "Strong Pursuit"},
		{80, "Strong Pursuit"},
		{79, "Pursue"},
		{65, "Pursue"},
		{64, "Selective"},
		{50, "Selective"},
		{49, "Low Priority"},
		{0, "Low Priority"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, recommendationFor(tt.score).Label, "score %d", tt.score)
	}
}

func TestScoreAllOpportunities_SortedDescending(t *testing.T) {
	e := fixedEngine()
	opps := []models.Opportunity{
		{ID: "weak", Sector: "defence", Region: "south-west", Value: 500_000},
		{ID: "strong", Sector: "rail", Region: "london", Client: "Network Rail", Value: 60_000_000, BidDeadline: deadlineIn(45)},
		{ID: "mid", Sector: "maritime", Region: "scotland", Value: 8_000_000, BidDeadline: deadlineIn(45)},
	}

	scored := e.ScoreAllOpportunities(opps, Context{ExistingClients: []string{"Network Rail"}})
	require.Len(t, scored, 3)
	assert.Equal(t, "strong", scored[0].ID)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Intelligence.TotalScore, scored[i].Intelligence.TotalScore)
	}
}

func TestScoreAllOpportunities_StableOnTies(t *testing.T) {
	e := fixedEngine()
	// Identical opportunities score identically; input order must hold.
	opp := models.Opportunity{Sector: "rail", Region: "london", Value: 60_000_000, BidDeadline: deadlineIn(45)}
	a, b := opp, opp
	a.ID, b.ID = "first", "second"

	scored := e.ScoreAllOpportunities([]models.Opportunity{a, b}, Context{})
	require.Len(t, scored, 2)
	assert.Equal(t, "first", scored[0].ID)
	assert.Equal(t, "second", scored[1].ID)
}

func TestCompetitorAnalysis(t *testing.T) {
	e := testEngine()

	rail := e.CompetitorAnalysis("rail")
	assert.Equal(t, 5, rail.TotalCompetitors)
	assert.Len(t, rail.StrongCompetitors, 3)
	assert.Equal(t, IntensityHigh, rail.CompetitiveIntensity)
	assert.Len(t, rail.TopThreats, 3)

	utilities := e.CompetitorAnalysis("utilities")
	assert.Equal(t, IntensityMedium, utilities.CompetitiveIntensity)

	maritime := e.CompetitorAnalysis("maritime")
	assert.Equal(t, IntensityLow, maritime.CompetitiveIntensity)

	unknown := e.CompetitorAnalysis("defence")
	assert.Zero(t, unknown.TotalCompetitors)
	assert.Equal(t, IntensityLow, unknown.CompetitiveIntensity)
}

func TestSectorStrengths_Alphabetical(t *testing.T) {
	strengths := testEngine().SectorStrengths()
	require.Len(t, strengths, 5)

	var sectors []string
	for _, s := range strengths {
		sectors = append(sectors, s.Sector)
	}
	assert.Equal(t, []string{"aviation", "highways", "maritime", "rail", "utilities"}, sectors)
}

func TestAllCompetitors_MergedAndOrdered(t *testing.T) {
	merged := testEngine().AllCompetitors()
	require.NotEmpty(t, merged)

	// Arcadis and Turner & Townsend both span three sectors; the name
	// breaks the tie.
	assert.Equal(t, "Arcadis", merged[0].Name)
	assert.Equal(t, "Turner & Townsend", merged[1].Name)
	assert.Len(t, merged[0].Sectors, 3)

	for i := 1; i < len(merged); i++ {
		assert.GreaterOrEqual(t, len(merged[i-1].Sectors), len(merged[i].Sectors))
	}
}

func TestPipelineIntelligence(t *testing.T) {
	e := fixedEngine()
	opps := []models.Opportunity{
		{ID: "a", Sector: "rail", Region: "london", Client: "Network Rail", Value: 60_000_000, BidDeadline: deadlineIn(45)},
		{ID: "b", Sector: "maritime", Region: "scotland", Value: 8_000_000, BidDeadline: deadlineIn(45)},
		{ID: "c", Sector: "defence", Region: "south-west", Value: 500_000},
	}
	ctx := Context{ExistingClients: []string{"Network Rail"}}

	summary := e.PipelineIntelligence(opps, ctx)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, summary.Total,
		summary.StrongPursuits.Count+summary.Pursuits.Count+summary.Selective.Count+summary.LowPriority.Count)
	assert.Len(t, summary.Opportunities, 3)
	assert.LessOrEqual(t, len(summary.TopOpportunities), 5)

	// Bucket membership must agree with each opportunity's own score.
	for _, s := range summary.Opportunities {
		score := s.Intelligence.TotalScore
		switch {
		case score >= 80:
			assert.GreaterOrEqual(t, summary.StrongPursuits.Count, 1)
		case score >= 65:
			assert.GreaterOrEqual(t, summary.Pursuits.Count, 1)
		case score >= 50:
			assert.GreaterOrEqual(t, summary.Selective.Count, 1)
		default:
			assert.GreaterOrEqual(t, summary.LowPriority.Count, 1)
		}
	}

	// The strong bucket carries its value and averaged win probability.
	if summary.StrongPursuits.Count > 0 {
		assert.Greater(t, summary.StrongPursuits.TotalValue, 0.0)
		assert.Greater(t, summary.StrongPursuits.AvgWinProbability, 0)
	}
	assert.Zero(t, bucketFor(nil).AvgWinProbability)
}
