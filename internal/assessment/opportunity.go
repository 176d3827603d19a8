package assessment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oliver/market-intel/internal/models"
)

// Recommendation is the go/no-go outcome for an assessment.
type Recommendation struct {
	Decision   string `json:"decision"`
	Confidence string `json:"confidence"`
	Summary    string `json:"summary"`
	Color      string `json:"color"`
}

// Priority ranks an action; high sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}

// Action is one entry in an action plan.
type Action struct {
	Priority  Priority `json:"priority"`
	Action    string   `json:"action"`
	Owner     string   `json:"owner"`
	Timeframe string   `json:"timeframe"`
}

// TimelinePhase is one phase of the standard bid timeline.
type TimelinePhase struct {
	Phase      string   `json:"phase"`
	Activities []string `json:"activities"`
}

// ActionPlan is the ordered mitigation plan plus, for viable bids, the
// standard four-phase timeline.
type ActionPlan struct {
	Actions  []Action        `json:"actions"`
	Timeline []TimelinePhase `json:"timeline"`
}

// Mitigation pairs a weakness with the catalog insight addressing it.
type Mitigation struct {
	Issue      string `json:"issue"`
	Mitigation string `json:"mitigation"`
	Status     string `json:"status"`
}

// WinStrategy is the bid narrative derived from the assessment.
type WinStrategy struct {
	Theme           string       `json:"theme"`
	KeyMessages     []string     `json:"key_messages"`
	Differentiators []string     `json:"differentiators"`
	Mitigations     []Mitigation `json:"mitigations"`
}

// FullResult composes every assessment output for one opportunity.
type FullResult struct {
	Score          int                     `json:"score"`
	SectionScores  map[string]SectionScore `json:"section_scores"`
	Recommendation Recommendation          `json:"recommendation"`
	Strengths      []Strength              `json:"strengths"`
	Weaknesses     []Weakness              `json:"weaknesses"`
	ActionPlan     ActionPlan              `json:"action_plan"`
	WinStrategy    WinStrategy             `json:"win_strategy"`
	Opportunity    *models.Opportunity     `json:"opportunity,omitempty"`
}

// criticalSections are the sections whose weakness overrides the primary
// go/no-go band.
var criticalSections = []string{"capability", "resources"}

// GoNoGoRecommendation maps a score to a decision band, then applies the
// critical-section override: a capability or resources section below 30
// caps any result at 45+ to CONDITIONAL. The override runs after band
// selection, never before.
func GoNoGoRecommendation(score int, sectionScores map[string]SectionScore) Recommendation {
	var rec Recommendation
	switch {
	case score >= 75:
		rec = Recommendation{
			Decision:   "STRONG GO",
			Confidence: "High",
			Summary:    "This opportunity aligns well with our capabilities and strategy. Recommend prioritising this bid.",
			Color:      "success",
		}
	case score >= 60:
		rec = Recommendation{
			Decision:   "GO",
			Confidence: "Medium-High",
			Summary:    "Good fit overall with manageable gaps. Recommend proceeding with targeted mitigation.",
			Color:      "success",
		}
	case score >= 45:
		rec = Recommendation{
			Decision:   "SELECTIVE GO",
			Confidence: "Medium",
			Summary:    "Mixed fit - proceed only if strategic value justifies investment or gaps can be addressed.",
			Color:      "warning",
		}
	case score >= 30:
		rec = Recommendation{
			Decision:   "CONDITIONAL",
			Confidence: "Low-Medium",
			Summary:    "Significant concerns identified. Only proceed if critical gaps can be resolved.",
			Color:      "warning",
		}
	default:
		rec = Recommendation{
			Decision:   "NO GO",
			Confidence: "High",
			Summary:    "Poor fit with current capabilities and strategy. Recommend declining this opportunity.",
			Color:      "danger",
		}
	}

	for _, sectionID := range criticalSections {
		section, ok := sectionScores[sectionID]
		if ok && section.Score < 30 && score >= 45 {
			rec.Decision = "CONDITIONAL"
			rec.Confidence = "Reduced"
			rec.Summary = fmt.Sprintf("Warning: Critical weakness in %s. Address before proceeding.", section.Title)
			rec.Color = "warning"
			break
		}
	}

	return rec
}

// weaknessActions maps (section, question) to the mitigation action it
// triggers. An explicit table rather than text matching: question wording
// can change without silently dropping actions.
var weaknessActions = map[[2]string]Action{
	{"capability", "client_experience"}: {
		Priority:  PriorityHigh,
		Action:    "Identify client contacts and arrange introductory meeting",
		Owner:     "BD Lead",
		Timeframe: "This week",
	},
	{"capability", "sector_experience"}: {
		Priority:  PriorityHigh,
		Action:    "Compile relevant case studies from adjacent sectors",
		Owner:     "Bid Manager",
		Timeframe: "Before bid submission",
	},
	{"capability", "technical_skills"}: {
		Priority:  PriorityHigh,
		Action:    "Identify potential specialist partners or subconsultants",
		Owner:     "Technical Lead",
		Timeframe: "Within 1 week",
	},
	{"resources", "bid_team"}: {
		Priority:  PriorityHigh,
		Action:    "Review resource allocation and escalate conflicts",
		Owner:     "Resource Manager",
		Timeframe: "Immediately",
	},
	{"resources", "delivery_capacity"}: {
		Priority:  PriorityMedium,
		Action:    "Develop recruitment/mobilisation contingency plan",
		Owner:     "HR / Operations",
		Timeframe: "Before bid submission",
	},
	{"competitive", "differentiator"}: {
		Priority:  PriorityHigh,
		Action:    "Workshop to identify and articulate unique value proposition",
		Owner:     "Bid Team",
		Timeframe: "Week 1 of bid",
	},
	{"competitive", "price_position"}: {
		Priority:  PriorityMedium,
		Action:    "Review pricing strategy and identify efficiency opportunities",
		Owner:     "Commercial Lead",
		Timeframe: "Before pricing",
	},
}

// standardTimeline is appended for every score at or above the selective
// threshold.
func standardTimeline() []TimelinePhase {
	return []TimelinePhase{
		{Phase: "Week 1", Activities: []string{"Confirm bid team", "Client engagement", "Competitor analysis"}},
		{Phase: "Week 2-3", Activities: []string{"Solution development", "Case study selection", "Draft response"}},
		{Phase: "Week 4", Activities: []string{"Internal review", "Pricing finalisation", "Quality check"}},
		{Phase: "Final", Activities: []string{"Management sign-off", "Submission", "Follow-up plan"}},
	}
}

// BuildActionPlan derives mitigation actions from weaknesses via the
// action table, adds strength-led actions, and sorts stably by priority.
func BuildActionPlan(score int, weaknesses []Weakness, strengths []Strength) ActionPlan {
	plan := ActionPlan{}

	for _, weakness := range weaknesses {
		if action, ok := weaknessActions[[2]string{weakness.SectionID, weakness.QuestionID}]; ok {
			plan.Actions = append(plan.Actions, action)
		}
	}

	if score >= 45 {
		plan.Timeline = standardTimeline()
	}

	top := strengths
	if len(top) > 3 {
		top = top[:3]
	}
	for _, strength := range top {
		if strength.SectionID == "strategic" {
			plan.Actions = append(plan.Actions, Action{
				Priority:  PriorityMedium,
				Action:    "Highlight strategic alignment in executive summary",
				Owner:     "Bid Manager",
				Timeframe: "During bid writing",
			})
		}
	}

	sort.SliceStable(plan.Actions, func(i, j int) bool {
		return priorityRank[plan.Actions[i].Priority] < priorityRank[plan.Actions[j].Priority]
	})
	return plan
}

// differentiatorMarkers are the answer-label keywords that promote a
// strength to a named differentiator.
var differentiatorMarkers = []string{"strong", "extensive", "unique"}

// BuildWinStrategy picks the bid theme from where the strengths cluster
// and turns marked strength answers into differentiators.
func BuildWinStrategy(strengths []Strength, weaknesses []Weakness) WinStrategy {
	strategy := WinStrategy{}

	capability := countBySection(strengths, "capability")
	strategic := countBySection(strengths, "strategic")

	switch {
	case capability >= 2:
		strategy.Theme = "Deep Expertise & Proven Track Record"
		strategy.KeyMessages = []string{
			"Demonstrate extensive relevant experience",
			"Lead with case studies and testimonials",
		}
	case strategic >= 2:
		strategy.Theme = "Strategic Partnership & Long-term Value"
		strategy.KeyMessages = []string{
			"Position as strategic partner, not just supplier",
			"Emphasise commitment to client success",
		}
	default:
		strategy.Theme = "Right Team, Right Approach"
		strategy.KeyMessages = []string{
			"Focus on team quality and methodology",
			"Demonstrate understanding of client needs",
		}
	}

	for _, strength := range strengths {
		for _, marker := range differentiatorMarkers {
			if strings.Contains(strings.ToLower(strength.Answer), marker) {
				strategy.Differentiators = append(strategy.Differentiators, strength.Answer)
				break
			}
		}
	}

	for _, weakness := range weaknesses {
		strategy.Mitigations = append(strategy.Mitigations, Mitigation{
			Issue:      weakness.Question,
			Mitigation: weakness.Insight,
			Status:     "To address",
		})
	}

	return strategy
}

func countBySection(strengths []Strength, sectionID string) int {
	n := 0
	for _, s := range strengths {
		if s.SectionID == sectionID {
			n++
		}
	}
	return n
}

// AssessmentResult composes score, recommendation, action plan and win
// strategy for one opportunity assessment.
func AssessmentResult(answers AnswerSet, opp *models.Opportunity) FullResult {
	scored := Score(OpportunitySections, answers)
	return FullResult{
		Score:          scored.OverallScore,
		SectionScores:  scored.SectionScores,
		Recommendation: GoNoGoRecommendation(scored.OverallScore, scored.SectionScores),
		Strengths:      scored.Strengths,
		Weaknesses:     scored.Weaknesses,
		ActionPlan:     BuildActionPlan(scored.OverallScore, scored.Weaknesses, scored.Strengths),
		WinStrategy:    BuildWinStrategy(scored.Strengths, scored.Weaknesses),
		Opportunity:    opp,
	}
}
