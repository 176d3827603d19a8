package assessment

import (
	"sort"

	"github.com/oliver/market-intel/internal/models"
)

// RegionSections is the regional-investment question bank, the mirror of
// OpportunitySections for scoring a region rather than a single bid.
var RegionSections = Catalog{
	{
		ID:    "presence",
		Title: "Current Presence",
		Icon:  "office",
		Questions: []Question{
			{
				ID:   "office_presence",
				Text: "Do we have an office in this region?",
				Options: []Option{
					{Value: 3, Label: "Yes, established office with full team"},
					{Value: 2, Label: "Yes, small office or satellite location"},
					{Value: 1, Label: "No, but staff work remotely in the region"},
					{Value: 0, Label: "No presence at all"},
				},
				Weight:  1.2,
				Insight: "Local presence significantly improves client relationships and win rates",
			},
			{
				ID:   "staff_capacity",
				Text: "What is our staff capacity in or near this region?",
				Options: []Option{
					{Value: 3, Label: "Strong - adequate team to handle growth"},
					{Value: 2, Label: "Moderate - can service current workload"},
					{Value: 1, Label: "Limited - stretched or travelling in"},
					{Value: 0, Label: "None - would need to establish from scratch"},
				},
				Weight:  1.1,
				Insight: "Staff capacity determines ability to respond to opportunities",
			},
			{
				ID:   "local_knowledge",
				Text: "How strong is our local market knowledge?",
				Options: []Option{
					{Value: 3, Label: "Excellent - deep understanding of local dynamics"},
					{Value: 2, Label: "Good - reasonable awareness of key players"},
					{Value: 1, Label: "Basic - general awareness only"},
					{Value: 0, Label: "Poor - limited knowledge of the region"},
				},
				Weight:  0.9,
				Insight: "Local knowledge helps identify opportunities early and bid effectively",
			},
		},
	},
	{
		ID:    "relationships",
		Title: "Client Relationships",
		Icon:  "handshake",
		Questions: []Question{
			{
				ID:   "existing_clients",
				Text: "How many active client relationships do we have in this region?",
				Options: []Option{
					{Value: 3, Label: "Many - well established with multiple clients"},
					{Value: 2, Label: "Some - a few key client relationships"},
					{Value: 1, Label: "Few - one or two relationships"},
					{Value: 0, Label: "None - no existing client relationships"},
				},
				Weight:  1.3,
				Insight: "Existing relationships are the foundation for regional growth",
			},
			{
				ID:   "client_satisfaction",
				Text: "How satisfied are our existing clients in this region?",
				Options: []Option{
					{Value: 3, Label: "Very satisfied - strong references available"},
					{Value: 2, Label: "Satisfied - positive relationships"},
					{Value: 1, Label: "Mixed - some challenges"},
					{Value: 0, Label: "N/A - no existing clients"},
				},
				Weight:  1.0,
				Insight: "Client satisfaction drives repeat business and referrals",
			},
			{
				ID:   "framework_positions",
				Text: "Are we on relevant frameworks for this region?",
				Options: []Option{
					{Value: 3, Label: "Yes, multiple key frameworks"},
					{Value: 2, Label: "Yes, one or two frameworks"},
					{Value: 1, Label: "No, but eligible to bid"},
					{Value: 0, Label: "No, and not eligible currently"},
				},
				Weight:  1.1,
				Insight: "Framework positions provide consistent access to opportunities",
			},
		},
	},
	{
		ID:    "pipeline",
		Title: "Pipeline & Opportunity",
		Icon:  "chart",
		Questions: []Question{
			{
				ID:   "pipeline_strength",
				Text: "How strong is our current pipeline in this region?",
				Options: []Option{
					{Value: 3, Label: "Strong - significant opportunities identified"},
					{Value: 2, Label: "Moderate - some opportunities in progress"},
					{Value: 1, Label: "Weak - few opportunities identified"},
					{Value: 0, Label: "Empty - no pipeline in this region"},
				},
				Weight:  1.2,
				Insight: "Pipeline strength indicates near-term revenue potential",
			},
			{
				ID:   "win_rate",
				Text: "What is our historical win rate in this region?",
				Options: []Option{
					{Value: 3, Label: "Above average - consistently winning"},
					{Value: 2, Label: "Average - competitive performance"},
					{Value: 1, Label: "Below average - struggling to win"},
					{Value: 0, Label: "Unknown - insufficient history"},
				},
				Weight:  1.0,
				Insight: "Historical performance indicates competitive position",
			},
			{
				ID:   "market_growth",
				Text: "What is the expected market growth in this region?",
				Options: []Option{
					{Value: 3, Label: "High growth - major investment programmes"},
					{Value: 2, Label: "Moderate growth - steady pipeline"},
					{Value: 1, Label: "Flat - limited new investment"},
					{Value: 0, Label: "Declining - reduced investment expected"},
				},
				Weight:  1.1,
				Insight: "Market growth determines long-term opportunity volume",
			},
		},
	},
	{
		ID:    "competition",
		Title: "Competitive Landscape",
		Icon:  "swords",
		Questions: []Question{
			{
				ID:   "competitor_presence",
				Text: "How established are competitors in this region?",
				Options: []Option{
					{Value: 3, Label: "Weak - limited competitor presence"},
					{Value: 2, Label: "Moderate - some established competitors"},
					{Value: 1, Label: "Strong - well-entrenched competitors"},
					{Value: 0, Label: "Dominant - competitors own the market"},
				},
				Weight:  1.0,
				Insight: "Competitor strength affects win rates and pricing",
			},
			{
				ID:   "differentiation",
				Text: "Can we differentiate from competitors in this region?",
				Options: []Option{
					{Value: 3, Label: "Yes, clear unique advantages"},
					{Value: 2, Label: "Somewhat, some differentiators"},
					{Value: 1, Label: "Limited, similar to competitors"},
					{Value: 0, Label: "No, commoditised market"},
				},
				Weight:  1.1,
				Insight: "Differentiation is key to winning in competitive markets",
			},
			{
				ID:   "pricing_position",
				Text: "How competitive is our pricing in this region?",
				Options: []Option{
					{Value: 3, Label: "Competitive with good margins"},
					{Value: 2, Label: "Competitive but tight margins"},
					{Value: 1, Label: "Higher than market, need to justify"},
					{Value: 0, Label: "Uncompetitive, losing on price"},
				},
				Weight:  0.9,
				Insight: "Pricing position affects both win rates and profitability",
			},
		},
	},
	{
		ID:    "strategic",
		Title: "Strategic Importance",
		Icon:  "target",
		Questions: []Question{
			{
				ID:   "strategic_priority",
				Text: "Is this region a strategic priority for growth?",
				Options: []Option{
					{Value: 3, Label: "Yes, top priority region"},
					{Value: 2, Label: "Yes, secondary priority"},
					{Value: 1, Label: "Opportunistic, not a focus"},
					{Value: 0, Label: "No, not aligned with strategy"},
				},
				Weight:  1.2,
				Insight: "Strategic alignment determines investment appetite",
			},
			{
				ID:   "sector_alignment",
				Text: "Do the regional opportunities align with our sector strengths?",
				Options: []Option{
					{Value: 3, Label: "Excellent alignment with core sectors"},
					{Value: 2, Label: "Good alignment with some sectors"},
					{Value: 1, Label: "Partial alignment"},
					{Value: 0, Label: "Poor alignment with our expertise"},
				},
				Weight:  1.1,
				Insight: "Sector alignment improves win rates and delivery quality",
			},
			{
				ID:   "investment_appetite",
				Text: "Is the business willing to invest in this region?",
				Options: []Option{
					{Value: 3, Label: "Yes, significant investment approved"},
					{Value: 2, Label: "Yes, moderate investment possible"},
					{Value: 1, Label: "Limited, minimal investment only"},
					{Value: 0, Label: "No, cost-neutral growth only"},
				},
				Weight:  1.0,
				Insight: "Investment appetite determines growth pace",
			},
		},
	},
}

// Investment is a tiered investment recommendation for a region.
type Investment struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Level       string `json:"level"`
	ExpectedROI string `json:"expected_roi"`
}

// RegionActionPlan is the region mirror of ActionPlan: mitigation actions
// plus tiered investment recommendations.
type RegionActionPlan struct {
	Actions     []RegionAction `json:"actions"`
	Investments []Investment   `json:"investments"`
}

// RegionAction extends Action with an indicative investment level.
type RegionAction struct {
	Priority   Priority `json:"priority"`
	Action     string   `json:"action"`
	Owner      string   `json:"owner"`
	Timeframe  string   `json:"timeframe"`
	Investment string   `json:"investment"`
}

// RegionStrategy is the growth narrative for a region.
type RegionStrategy struct {
	Theme         string   `json:"theme"`
	Objectives    []string `json:"objectives"`
	QuickWins     []string `json:"quick_wins"`
	LongTermPlays []string `json:"long_term_plays"`
}

// RegionFullResult composes every output of a region assessment.
type RegionFullResult struct {
	Score          int                     `json:"score"`
	SectionScores  map[string]SectionScore `json:"section_scores"`
	Recommendation Recommendation          `json:"recommendation"`
	Strengths      []Strength              `json:"strengths"`
	Weaknesses     []Weakness              `json:"weaknesses"`
	ActionPlan     RegionActionPlan        `json:"action_plan"`
	Strategy       RegionStrategy          `json:"strategy"`
	Region         *models.Region          `json:"region,omitempty"`
}

// RegionScore aggregates answers over the region catalog.
func RegionScore(answers AnswerSet) ScoreResult {
	return Score(RegionSections, answers)
}

// RegionRecommendation maps a region score to an investment decision
// band, then applies the override: weak presence or weak relationships
// (section score below 30) caps any 45+ result at BUILD FOUNDATIONS.
func RegionRecommendation(score int, sectionScores map[string]SectionScore) Recommendation {
	var rec Recommendation
	switch {
	case score >= 75:
		rec = Recommendation{
			Decision:   "INVEST & GROW",
			Confidence: "High",
			Summary:    "Strong foundation for growth. Recommend increased investment to capture market opportunity.",
			Color:      "#10B981",
		}
	case score >= 60:
		rec = Recommendation{
			Decision:   "STRENGTHEN POSITION",
			Confidence: "Medium-High",
			Summary:    "Good base with room for improvement. Focus on addressing gaps before major expansion.",
			Color:      "#10B981",
		}
	case score >= 45:
		rec = Recommendation{
			Decision:   "SELECTIVE INVESTMENT",
			Confidence: "Medium",
			Summary:    "Mixed picture. Invest selectively in specific opportunities while building foundations.",
			Color:      "#F59E0B",
		}
	case score >= 30:
		rec = Recommendation{
			Decision:   "BUILD FOUNDATIONS",
			Confidence: "Low-Medium",
			Summary:    "Significant gaps to address. Focus on establishing basics before pursuing growth.",
			Color:      "#F59E0B",
		}
	default:
		rec = Recommendation{
			Decision:   "DEPRIORITISE",
			Confidence: "High",
			Summary:    "Region does not align with current capabilities or strategy. Consider resource reallocation.",
			Color:      "#EF4444",
		}
	}

	if presence, ok := sectionScores["presence"]; ok && presence.Score < 30 && score >= 45 {
		rec.Decision = "BUILD FOUNDATIONS"
		rec.Summary = "Limited presence is a critical gap. Establish local capability before pursuing growth."
		rec.Color = "#F59E0B"
	}
	if relationships, ok := sectionScores["relationships"]; ok && relationships.Score < 30 && score >= 45 {
		rec.Decision = "BUILD FOUNDATIONS"
		rec.Summary = "Weak client relationships are a critical gap. Focus on relationship building first."
		rec.Color = "#F59E0B"
	}

	return rec
}

// regionWeaknessActions maps (section, question) to the regional action
// it triggers.
var regionWeaknessActions = map[[2]string]RegionAction{
	{"presence", "office_presence"}: {
		Priority:   PriorityHigh,
		Action:     "Evaluate options for establishing local presence (office, co-working, or key hire)",
		Owner:      "Regional Director",
		Timeframe:  "3 months",
		Investment: "Medium-High",
	},
	{"presence", "staff_capacity"}: {
		Priority:   PriorityHigh,
		Action:     "Develop recruitment plan for regional capability",
		Owner:      "HR / Operations",
		Timeframe:  "6 months",
		Investment: "High",
	},
	{"presence", "local_knowledge"}: {
		Priority:   PriorityMedium,
		Action:     "Assign regional champion to build market intelligence",
		Owner:      "Business Development",
		Timeframe:  "1 month",
		Investment: "Low",
	},
	{"relationships", "existing_clients"}: {
		Priority:   PriorityHigh,
		Action:     "Identify top 10 target clients and develop pursuit plans",
		Owner:      "BD Lead",
		Timeframe:  "1 month",
		Investment: "Low",
	},
	{"relationships", "framework_positions"}: {
		Priority:   PriorityHigh,
		Action:     "Map relevant frameworks and plan submissions",
		Owner:      "Bid Team",
		Timeframe:  "3 months",
		Investment: "Medium",
	},
	{"pipeline", "pipeline_strength"}: {
		Priority:   PriorityHigh,
		Action:     "Increase BD activity in region - networking, events, direct outreach",
		Owner:      "BD Team",
		Timeframe:  "Ongoing",
		Investment: "Medium",
	},
	{"pipeline", "win_rate"}: {
		Priority:   PriorityMedium,
		Action:     "Review lost bids to identify improvement areas",
		Owner:      "Bid Manager",
		Timeframe:  "1 month",
		Investment: "Low",
	},
	{"competition", "differentiation"}: {
		Priority:   PriorityMedium,
		Action:     "Develop regional value proposition highlighting unique strengths",
		Owner:      "Marketing",
		Timeframe:  "2 months",
		Investment: "Low",
	},
}

// BuildRegionActionPlan derives regional actions from weaknesses and a
// tiered investment recommendation from the score: Growth Investment at
// 60+, Foundation Building at 40+, Minimal Investment below.
func BuildRegionActionPlan(score int, weaknesses []Weakness) RegionActionPlan {
	plan := RegionActionPlan{}

	for _, weakness := range weaknesses {
		if action, ok := regionWeaknessActions[[2]string{weakness.SectionID, weakness.QuestionID}]; ok {
			plan.Actions = append(plan.Actions, action)
		}
	}

	switch {
	case score >= 60:
		plan.Investments = append(plan.Investments, Investment{
			Type:        "Growth Investment",
			Description: "Increase headcount and BD activity to capture growth",
			Level:       "High",
			ExpectedROI: "Strong pipeline growth within 12 months",
		})
	case score >= 40:
		plan.Investments = append(plan.Investments, Investment{
			Type:        "Foundation Building",
			Description: "Targeted investment to address gaps before scaling",
			Level:       "Medium",
			ExpectedROI: "Improved win rates within 6-12 months",
		})
	default:
		plan.Investments = append(plan.Investments, Investment{
			Type:        "Minimal Investment",
			Description: "Opportunistic approach only - no dedicated investment",
			Level:       "Low",
			ExpectedROI: "Maintain current position",
		})
	}

	sort.SliceStable(plan.Actions, func(i, j int) bool {
		return priorityRank[plan.Actions[i].Priority] < priorityRank[plan.Actions[j].Priority]
	})
	return plan
}

// largeProgrammeBudget is the 10-year regional budget above which the
// long-term plays assume a dedicated regional build-out.
const largeProgrammeBudget = 5_000_000_000

// BuildRegionStrategy picks the growth theme from where the strengths
// cluster; long-term plays scale with the region's 10-year budget.
func BuildRegionStrategy(strengths []Strength, region *models.Region) RegionStrategy {
	strategy := RegionStrategy{}

	presence := countBySection(strengths, "presence")
	relationships := countBySection(strengths, "relationships")
	pipeline := countBySection(strengths, "pipeline")

	switch {
	case presence >= 2 && relationships >= 1:
		strategy.Theme = "Accelerate Growth"
		strategy.Objectives = []string{
			"Increase market share in existing sectors",
			"Expand into adjacent sectors",
			"Grow key client relationships",
		}
	case relationships >= 2:
		strategy.Theme = "Deepen Relationships"
		strategy.Objectives = []string{
			"Expand work with existing clients",
			"Leverage references for new client wins",
			"Build presence through client secondments",
		}
	case pipeline >= 1:
		strategy.Theme = "Convert Pipeline"
		strategy.Objectives = []string{
			"Focus resources on winning active opportunities",
			"Build case studies from successful projects",
			"Establish reputation through delivery excellence",
		}
	default:
		strategy.Theme = "Establish Foundations"
		strategy.Objectives = []string{
			"Build basic market presence",
			"Develop initial client relationships",
			"Create regional go-to-market plan",
		}
	}

	strategy.QuickWins = []string{
		"Assign regional champion from existing staff",
		"Map all current opportunities and set pursuit priorities",
		"Identify networking events and industry forums",
		"Review competitor positioning and pricing",
	}

	if region != nil && region.Budget10Year > largeProgrammeBudget {
		strategy.LongTermPlays = []string{
			"Establish dedicated office presence",
			"Build team of 5+ regional specialists",
			"Secure position on 3+ key frameworks",
			"Develop signature project credentials",
		}
	} else {
		strategy.LongTermPlays = []string{
			"Build virtual team with regional focus",
			"Develop partnerships with local firms",
			"Target 2-3 strategic framework positions",
			"Build portfolio of regional case studies",
		}
	}

	return strategy
}

// RegionAssessmentResult composes every region assessment output.
func RegionAssessmentResult(answers AnswerSet, region *models.Region) RegionFullResult {
	scored := RegionScore(answers)
	return RegionFullResult{
		Score:          scored.OverallScore,
		SectionScores:  scored.SectionScores,
		Recommendation: RegionRecommendation(scored.OverallScore, scored.SectionScores),
		Strengths:      scored.Strengths,
		Weaknesses:     scored.Weaknesses,
		ActionPlan:     BuildRegionActionPlan(scored.OverallScore, scored.Weaknesses),
		Strategy:       BuildRegionStrategy(scored.Strengths, region),
		Region:         region,
	}
}
