package intel

import (
	"fmt"

	"github.com/oliver/market-intel/internal/models"
)

// RecommendationAction is the bid/no-bid call.
type RecommendationAction string

const (
	ActionPursue    RecommendationAction = "pursue"
	ActionSelective RecommendationAction = "selective"
	ActionDecline   RecommendationAction = "decline"
)

// Recommendation is the policy outcome for a total score.
type Recommendation struct {
	Action    RecommendationAction `json:"action"`
	Level     string               `json:"level"`
	Label     string               `json:"label"`
	Color     string               `json:"color"`
	Reasoning string               `json:"reasoning"`
}

// recommendationPolicy is evaluated top-down; the first band whose
// MinScore the total meets wins.
var recommendationPolicy = []struct {
	MinScore int
	Recommendation
}{
	{80, Recommendation{
		Action:    ActionPursue,
		Level:     "high",
		Label:     "Strong Pursuit",
		Color:     "#10B981",
		Reasoning: "Strong fit across multiple factors. Recommend aggressive pursuit with senior engagement.",
	}},
	{65, Recommendation{
		Action:    ActionPursue,
		Level:     "medium",
		Label:     "Pursue",
		Color:     "#F59E0B",
		Reasoning: "Good potential. Consider pursuing with targeted approach addressing weaker areas.",
	}},
	{50, Recommendation{
		Action:    ActionSelective,
		Level:     "low",
		Label:     "Selective",
		Color:     "#6B7280",
		Reasoning: "Mixed signals. Only pursue if strategic value outweighs resource investment.",
	}},
	{0, Recommendation{
		Action:    ActionDecline,
		Level:     "none",
		Label:     "Low Priority",
		Color:     "#EF4444",
		Reasoning: "Poor fit. Consider declining unless specific strategic reasons exist.",
	}},
}

func recommendationFor(totalScore int) Recommendation {
	for _, band := range recommendationPolicy {
		if totalScore >= band.MinScore {
			return band.Recommendation
		}
	}
	return recommendationPolicy[len(recommendationPolicy)-1].Recommendation
}

// CompetitiveIntensity categorises how contested a sector is.
type CompetitiveIntensity string

const (
	IntensityHigh   CompetitiveIntensity = "high"
	IntensityMedium CompetitiveIntensity = "medium"
	IntensityLow    CompetitiveIntensity = "low"
)

// CompetitorAnalysis partitions a sector's competitor list.
type CompetitorAnalysis struct {
	Sector               string               `json:"sector"`
	TotalCompetitors     int                  `json:"total_competitors"`
	StrongCompetitors    []Competitor         `json:"strong_competitors"`
	ModerateCompetitors  []Competitor         `json:"moderate_competitors"`
	CompetitiveIntensity CompetitiveIntensity `json:"competitive_intensity"`
	TopThreats           []Competitor         `json:"top_threats"`
}

// CompetitorAnalysis partitions the sector's competitors into strong and
// moderate; intensity is high at >=3 strong, medium at >=2.
func (e *Engine) CompetitorAnalysis(sector string) CompetitorAnalysis {
	competitors := e.competitors[sector]

	analysis := CompetitorAnalysis{
		Sector:           sector,
		TotalCompetitors: len(competitors),
	}
	for _, c := range competitors {
		if c.Strength == CompetitorStrong {
			analysis.StrongCompetitors = append(analysis.StrongCompetitors, c)
		} else {
			analysis.ModerateCompetitors = append(analysis.ModerateCompetitors, c)
		}
	}

	switch {
	case len(analysis.StrongCompetitors) >= 3:
		analysis.CompetitiveIntensity = IntensityHigh
	case len(analysis.StrongCompetitors) >= 2:
		analysis.CompetitiveIntensity = IntensityMedium
	default:
		analysis.CompetitiveIntensity = IntensityLow
	}

	analysis.TopThreats = analysis.StrongCompetitors
	if len(analysis.TopThreats) > 3 {
		analysis.TopThreats = analysis.TopThreats[:3]
	}
	return analysis
}

// InsightType classifies a strategic insight.
type InsightType string

const (
	InsightStrength InsightType = "strength"
	InsightWeakness InsightType = "weakness"
	InsightWarning  InsightType = "warning"
	InsightAction   InsightType = "action"
)

type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

// strategicInsights evaluates the per-factor rule list. The threshold
// boundaries drive the strength/weakness classification downstream, so
// they must not drift.
func (e *Engine) strategicInsights(scores Breakdown, opp models.Opportunity) []Insight {
	var insights []Insight

	if scores.SectorFit >= 80 {
		insights = append(insights, Insight{
			Type: InsightStrength,
			Text: fmt.Sprintf("Strong sector expertise in %s. Leverage track record.", opp.Sector),
		})
	} else if scores.SectorFit < 60 {
		insights = append(insights, Insight{
			Type: InsightWeakness,
			Text: fmt.Sprintf("Limited %s sector experience. Consider teaming arrangement.", opp.Sector),
		})
	}

	if scores.RegionFit >= 80 {
		insights = append(insights, Insight{
			Type: InsightStrength,
			Text: fmt.Sprintf("Strong regional presence in %s. Local relationships are an asset.", opp.Region),
		})
	} else if scores.RegionFit < 70 {
		insights = append(insights, Insight{
			Type: InsightAction,
			Text: "Consider local partner or highlight transferable regional experience.",
		})
	}

	if scores.ValueFit >= 80 {
		insights = append(insights, Insight{
			Type: InsightStrength,
			Text: "Contract value within ideal range. Right-sized for team capabilities.",
		})
	} else if scores.ValueFit < 50 {
		text := "Smaller contract - ensure margin viability before pursuing."
		if opp.Value > e.profile.SweetSpot.Max*2 {
			text = "Large contract - expect intense competition. Differentiation critical."
		}
		insights = append(insights, Insight{Type: InsightWarning, Text: text})
	}

	if scores.CompetitionLevel < 60 {
		insights = append(insights, Insight{
			Type: InsightWarning,
			Text: "High competition expected. Need strong differentiation strategy.",
		})
	}

	if scores.Timing < 60 {
		text := "Long lead time - use for early engagement and relationship building."
		if scores.Timing < 50 {
			text = "Tight timeline - assess resource availability before committing."
		}
		insights = append(insights, Insight{Type: InsightAction, Text: text})
	}

	if scores.ClientRelationship >= 80 {
		insights = append(insights, Insight{
			Type: InsightStrength,
			Text: "Existing client relationship provides competitive advantage.",
		})
	} else {
		insights = append(insights, Insight{
			Type: InsightAction,
			Text: "New client - prioritise early engagement and references.",
		})
	}

	return insights
}
