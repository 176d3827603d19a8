package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliver/market-intel/internal/models"
)

func TestRegionRecommendationBands(t *testing.T) {
	tests := []struct {
		score    int
		decision string
	}{
		{90, "INVEST & GROW"},
		{75, "INVEST & GROW"},
		{74, "STRENGTHEN POSITION"},
		{60, "STRENGTHEN POSITION"},
		{59, "SELECTIVE INVESTMENT"},
		{45, "SELECTIVE INVESTMENT"},
		{44, "BUILD FOUNDATIONS"},
		{30, "BUILD FOUNDATIONS"},
		{29, "DEPRIORITISE"},
	}
	for _, tt := range tests {
		rec := RegionRecommendation(tt.score, nil)
		assert.Equal(t, tt.decision, rec.Decision, "score %d", tt.score)
	}
}

func TestRegionRecommendation_PresenceOverride(t *testing.T) {
	sections := map[string]SectionScore{
		"presence":      {Score: 10, Title: "Current Presence"},
		"relationships": {Score: 90, Title: "Client Relationships"},
	}

	rec := RegionRecommendation(80, sections)
	assert.Equal(t, "BUILD FOUNDATIONS", rec.Decision)
	assert.Contains(t, rec.Summary, "presence")
}

func TestRegionRecommendation_RelationshipsOverride(t *testing.T) {
	sections := map[string]SectionScore{
		"presence":      {Score: 90, Title: "Current Presence"},
		"relationships": {Score: 10, Title: "Client Relationships"},
	}

	rec := RegionRecommendation(80, sections)
	assert.Equal(t, "BUILD FOUNDATIONS", rec.Decision)
	assert.Contains(t, rec.Summary, "relationships")
}

func TestRegionRecommendation_OverrideSkippedBelowThreshold(t *testing.T) {
	sections := map[string]SectionScore{
		"presence": {Score: 10, Title: "Current Presence"},
	}

	rec := RegionRecommendation(35, sections)
	assert.Equal(t, "BUILD FOUNDATIONS", rec.Decision)
	assert.Equal(t, "Low-Medium", rec.Confidence)
}

func TestRegionAssessment_WeakPresenceOverride(t *testing.T) {
	// Everything strong except presence, which is answered at the floor.
	answers := allAnswers(RegionSections, 3)
	answers["office_presence"] = 0
	answers["staff_capacity"] = 0
	answers["local_knowledge"] = 0

	result := RegionAssessmentResult(answers, nil)
	assert.GreaterOrEqual(t, result.Score, 45)
	assert.Zero(t, result.SectionScores["presence"].Score)
	assert.Equal(t, "BUILD FOUNDATIONS", result.Recommendation.Decision)
}

func TestBuildRegionActionPlan_InvestmentTiers(t *testing.T) {
	tests := []struct {
		score int
		typ   string
		level string
	}{
		{80, "Growth Investment", "High"},
		{60, "Growth Investment", "High"},
		{59, "Foundation Building", "Medium"},
		{40, "Foundation Building", "Medium"},
		{39, "Minimal Investment", "Low"},
		{0, "Minimal Investment", "Low"},
	}
	for _, tt := range tests {
		plan := BuildRegionActionPlan(tt.score, nil)
		require.Len(t, plan.Investments, 1, "score %d", tt.score)
		assert.Equal(t, tt.typ, plan.Investments[0].Type, "score %d", tt.score)
		assert.Equal(t, tt.level, plan.Investments[0].Level, "score %d", tt.score)
	}
}

func TestBuildRegionActionPlan_WeaknessActions(t *testing.T) {
	weaknesses := []Weakness{
		{SectionID: "pipeline", QuestionID: "win_rate"},
		{SectionID: "presence", QuestionID: "office_presence"},
		{SectionID: "strategic", QuestionID: "strategic_priority"}, // no mapped action
	}

	plan := BuildRegionActionPlan(50, weaknesses)
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, PriorityHigh, plan.Actions[0].Priority)
	assert.Equal(t, "Medium-High", plan.Actions[0].Investment)
	assert.Equal(t, PriorityMedium, plan.Actions[1].Priority)
}

func TestBuildRegionStrategy_Themes(t *testing.T) {
	presence := Strength{SectionID: "presence"}
	relationship := Strength{SectionID: "relationships"}
	pipeline := Strength{SectionID: "pipeline"}

	tests := []struct {
		name      string
		strengths []Strength
		theme     string
	}{
		{"accelerate", []Strength{presence, presence, relationship}, "Accelerate Growth"},
		{"deepen", []Strength{relationship, relationship}, "Deepen Relationships"},
		{"convert", []Strength{pipeline}, "Convert Pipeline"},
		{"establish", nil, "Establish Foundations"},
		{"presence without relationships", []Strength{presence, presence}, "Establish Foundations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.theme, BuildRegionStrategy(tt.strengths, nil).Theme)
		})
	}
}

func TestBuildRegionStrategy_LongTermPlaysScaleWithBudget(t *testing.T) {
	large := &models.Region{ID: "london", Budget10Year: 86_000_000_000}
	small := &models.Region{ID: "northern-ireland", Budget10Year: 4_600_000_000}

	assert.Contains(t, BuildRegionStrategy(nil, large).LongTermPlays, "Establish dedicated office presence")
	assert.Contains(t, BuildRegionStrategy(nil, small).LongTermPlays, "Build virtual team with regional focus")
	assert.Contains(t, BuildRegionStrategy(nil, nil).LongTermPlays, "Build virtual team with regional focus")
}

func TestRegionAssessmentResult_Composition(t *testing.T) {
	region := &models.Region{ID: "scotland", Name: "Scotland", Budget10Year: 29_000_000_000}
	result := RegionAssessmentResult(allAnswers(RegionSections, 3), region)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "INVEST & GROW", result.Recommendation.Decision)
	assert.Equal(t, "Accelerate Growth", result.Strategy.Theme)
	require.Len(t, result.ActionPlan.Investments, 1)
	assert.Equal(t, "Growth Investment", result.ActionPlan.Investments[0].Type)
	assert.NotEmpty(t, result.Strategy.QuickWins)
	assert.Same(t, region, result.Region)
}
