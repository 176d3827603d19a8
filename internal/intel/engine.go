package intel

import (
	"math"
	"sort"
	"time"

	"github.com/oliver/market-intel/internal/models"
)

// Context carries the caller-supplied inputs that scoring needs beyond the
// opportunity itself.
type Context struct {
	ExistingClients []string
}

// Engine scores opportunities against a company profile and competitor
// directory. Both are fixed at construction and never mutated, so one
// engine is safe for concurrent readers.
type Engine struct {
	profile     CompanyProfile
	competitors CompetitorDirectory
	clock       func() time.Time
}

func NewEngine(profile CompanyProfile, competitors CompetitorDirectory) *Engine {
	return &Engine{
		profile:     profile,
		competitors: competitors,
		clock:       time.Now,
	}
}

// WithClock replaces the engine's time source. Used by tests to pin
// timing scores.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

func (e *Engine) Profile() CompanyProfile { return e.profile }

// Result is the full intelligence output for one opportunity.
type Result struct {
	TotalScore         int                `json:"total_score"`
	Scores             Breakdown          `json:"scores"`
	Recommendation     Recommendation     `json:"recommendation"`
	WinProbability     int                `json:"win_probability"`
	CompetitorAnalysis CompetitorAnalysis `json:"competitor_analysis"`
	StrategicInsights  []Insight          `json:"strategic_insights"`
}

// CalculateBidScore scores a single opportunity. It is a pure read: the
// opportunity is never mutated and every call computes fresh.
func (e *Engine) CalculateBidScore(opp models.Opportunity, ctx Context) Result {
	scores := Breakdown{
		SectorFit:          e.scoreSectorFit(opp.Sector),
		RegionFit:          e.scoreRegionFit(opp.Region),
		ValueFit:           e.scoreValueFit(opp.Value),
		CompetitionLevel:   e.scoreCompetitionLevel(opp.Sector, opp.Value),
		ClientRelationship: e.scoreClientRelationship(opp.Client, ctx.ExistingClients),
		Timing:             e.scoreTiming(opp.BidDeadline, e.clock()),
	}

	raw := weightedTotal(scores)
	total := int(math.Round(raw))

	return Result{
		TotalScore:         total,
		Scores:             scores,
		Recommendation:     recommendationFor(total),
		WinProbability:     e.estimateWinProbability(raw, opp.Sector),
		CompetitorAnalysis: e.CompetitorAnalysis(opp.Sector),
		StrategicInsights:  e.strategicInsights(scores, opp),
	}
}

// winProbabilityCap is a deliberate calibration ceiling: no estimate may
// exceed 45%.
const winProbabilityCap = 45

// estimateWinProbability takes the raw weighted total: a 84.7 stays in
// the 1.2 band even though it displays as 85.
func (e *Engine) estimateWinProbability(totalScore float64, sector string) int {
	winRate := 0.15
	if expertise, ok := e.profile.Expertise[sector]; ok {
		winRate = expertise.WinRate
	}

	multiplier := 0.7
	switch {
	case totalScore >= 85:
		multiplier = 1.5
	case totalScore >= 70:
		multiplier = 1.2
	case totalScore >= 55:
		multiplier = 1.0
	}

	probability := int(math.Round(winRate * multiplier * 100))
	if probability > winProbabilityCap {
		return winProbabilityCap
	}
	return probability
}

// ScoredOpportunity annotates an opportunity with its intelligence result.
type ScoredOpportunity struct {
	models.Opportunity
	Intelligence Result `json:"intelligence"`
}

// ScoreAllOpportunities scores every opportunity and sorts descending by
// total score. The sort is stable so equal scores keep input order.
func (e *Engine) ScoreAllOpportunities(opps []models.Opportunity, ctx Context) []ScoredOpportunity {
	scored := make([]ScoredOpportunity, 0, len(opps))
	for _, opp := range opps {
		scored = append(scored, ScoredOpportunity{
			Opportunity:  opp,
			Intelligence: e.CalculateBidScore(opp, ctx),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Intelligence.TotalScore > scored[j].Intelligence.TotalScore
	})
	return scored
}

// SectorStrength summarises capability and competition for one sector.
type SectorStrength struct {
	Sector      string         `json:"sector"`
	Level       ExpertiseLevel `json:"level"`
	WinRate     float64        `json:"win_rate"`
	Competitors []Competitor   `json:"competitors"`
}

// SectorStrengths lists every sector in the profile, alphabetically.
func (e *Engine) SectorStrengths() []SectorStrength {
	sectors := make([]string, 0, len(e.profile.Expertise))
	for sector := range e.profile.Expertise {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	strengths := make([]SectorStrength, 0, len(sectors))
	for _, sector := range sectors {
		expertise := e.profile.Expertise[sector]
		strengths = append(strengths, SectorStrength{
			Sector:      sector,
			Level:       expertise.Level,
			WinRate:     expertise.WinRate,
			Competitors: e.competitors[sector],
		})
	}
	return strengths
}

// CompetitorSector records one sector a competitor operates in.
type CompetitorSector struct {
	Sector   string             `json:"sector"`
	Strength CompetitorStrength `json:"strength"`
	Focus    []string           `json:"focus"`
}

// CompetitorSummary is a competitor merged across sectors.
type CompetitorSummary struct {
	Name            string             `json:"name"`
	Sectors         []CompetitorSector `json:"sectors"`
	OverallStrength CompetitorStrength `json:"overall_strength"`
}

// AllCompetitors merges the directory by competitor name, sorted by sector
// coverage (ties broken by name).
func (e *Engine) AllCompetitors() []CompetitorSummary {
	sectors := make([]string, 0, len(e.competitors))
	for sector := range e.competitors {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	byName := make(map[string]*CompetitorSummary)
	var order []string
	for _, sector := range sectors {
		for _, comp := range e.competitors[sector] {
			summary, ok := byName[comp.Name]
			if !ok {
				summary = &CompetitorSummary{Name: comp.Name, OverallStrength: comp.Strength}
				byName[comp.Name] = summary
				order = append(order, comp.Name)
			}
			summary.Sectors = append(summary.Sectors, CompetitorSector{
				Sector:   sector,
				Strength: comp.Strength,
				Focus:    comp.Focus,
			})
		}
	}

	result := make([]CompetitorSummary, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if len(result[i].Sectors) != len(result[j].Sectors) {
			return len(result[i].Sectors) > len(result[j].Sectors)
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// PipelineBucket aggregates one recommendation band of the pipeline.
type PipelineBucket struct {
	Count             int     `json:"count"`
	TotalValue        float64 `json:"total_value"`
	AvgWinProbability int     `json:"avg_win_probability"`
}

// PipelineSummary buckets the scored pipeline by recommendation band.
type PipelineSummary struct {
	Total            int                 `json:"total"`
	StrongPursuits   PipelineBucket      `json:"strong_pursuits"`
	Pursuits         PipelineBucket      `json:"pursuits"`
	Selective        PipelineBucket      `json:"selective"`
	LowPriority      PipelineBucket      `json:"low_priority"`
	TopOpportunities []ScoredOpportunity `json:"top_opportunities"`
	Opportunities    []ScoredOpportunity `json:"opportunities"`
}

// PipelineIntelligence scores the whole pipeline and buckets it:
// strong pursuits >=80, pursuits [65,80), selective [50,65), rest low
// priority.
func (e *Engine) PipelineIntelligence(opps []models.Opportunity, ctx Context) PipelineSummary {
	scored := e.ScoreAllOpportunities(opps, ctx)

	var strong, pursue, selective, low []ScoredOpportunity
	for _, s := range scored {
		switch {
		case s.Intelligence.TotalScore >= 80:
			strong = append(strong, s)
		case s.Intelligence.TotalScore >= 65:
			pursue = append(pursue, s)
		case s.Intelligence.TotalScore >= 50:
			selective = append(selective, s)
		default:
			low = append(low, s)
		}
	}

	top := strong
	if len(top) > 5 {
		top = top[:5]
	}

	return PipelineSummary{
		Total:            len(opps),
		StrongPursuits:   bucketFor(strong),
		Pursuits:         bucketFor(pursue),
		Selective:        bucketFor(selective),
		LowPriority:      bucketFor(low),
		TopOpportunities: top,
		Opportunities:    scored,
	}
}

func bucketFor(scored []ScoredOpportunity) PipelineBucket {
	bucket := PipelineBucket{Count: len(scored)}
	if len(scored) == 0 {
		return bucket
	}
	probSum := 0
	for _, s := range scored {
		bucket.TotalValue += s.Value
		probSum += s.Intelligence.WinProbability
	}
	bucket.AvgWinProbability = int(math.Round(float64(probSum) / float64(len(scored))))
	return bucket
}
