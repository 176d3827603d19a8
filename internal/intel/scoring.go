package intel

import (
	"math"
	"strings"
	"time"
)

// Breakdown holds the six sub-scores, each 0-100. A fresh breakdown is
// produced per scoring call; nothing is cached.
type Breakdown struct {
	SectorFit          int `json:"sector_fit"`
	RegionFit          int `json:"region_fit"`
	ValueFit           int `json:"value_fit"`
	CompetitionLevel   int `json:"competition_level"`
	ClientRelationship int `json:"client_relationship"`
	Timing             int `json:"timing"`
}

// Factor weights. These sum to 1.0 and the recommendation thresholds
// downstream are calibrated against exactly this table.
const (
	weightSectorFit          = 0.25
	weightRegionFit          = 0.15
	weightValueFit           = 0.20
	weightCompetitionLevel   = 0.15
	weightClientRelationship = 0.15
	weightTiming             = 0.10
)

// WeightTable returns the factor weights keyed by breakdown field name.
func WeightTable() map[string]float64 {
	return map[string]float64{
		"sector_fit":          weightSectorFit,
		"region_fit":          weightRegionFit,
		"value_fit":           weightValueFit,
		"competition_level":   weightCompetitionLevel,
		"client_relationship": weightClientRelationship,
		"timing":              weightTiming,
	}
}

// weightedTotal is the pre-rounding weighted sum of the sub-scores. The
// win-probability bands key off this raw value, not the rounded display
// score.
func weightedTotal(b Breakdown) float64 {
	return float64(b.SectorFit)*weightSectorFit +
		float64(b.RegionFit)*weightRegionFit +
		float64(b.ValueFit)*weightValueFit +
		float64(b.CompetitionLevel)*weightCompetitionLevel +
		float64(b.ClientRelationship)*weightClientRelationship +
		float64(b.Timing)*weightTiming
}

// aggregate combines the sub-scores into the 0-100 total. Rounding is
// half-up on the final integer only.
func aggregate(b Breakdown) int {
	return int(math.Round(weightedTotal(b)))
}

// scoreSectorFit maps sector expertise to a fit score. Unknown sectors
// score 40 rather than failing.
func (e *Engine) scoreSectorFit(sector string) int {
	expertise, ok := e.profile.Expertise[sector]
	if !ok {
		return 40
	}
	switch expertise.Level {
	case LevelExpert:
		return 95
	case LevelStrong:
		return 80
	case LevelModerate:
		return 60
	}
	return 40
}

// NormalizeRegion lowercases a region name and joins spaces with hyphens,
// matching the IDs used in the datasets.
func NormalizeRegion(region string) string {
	return strings.Join(strings.Fields(strings.ToLower(region)), "-")
}

func (e *Engine) scoreRegionFit(region string) int {
	if region == "" {
		return 50
	}
	normalized := NormalizeRegion(region)
	for _, r := range e.profile.StrongRegions {
		if r == normalized {
			return 90
		}
	}
	return 60
}

// scoreValueFit scores contract value against the sweet-spot band. The
// cutoffs (0.5x min, 2x max, the GBP 1M floor) are calibrated constants.
func (e *Engine) scoreValueFit(value float64) int {
	if value == 0 {
		return 50
	}
	min, max := e.profile.SweetSpot.Min, e.profile.SweetSpot.Max
	switch {
	case value >= min && value <= max:
		return 95
	case value >= min*0.5 && value <= max*2:
		return 75
	case value < min*0.5 && value > 1_000_000:
		return 55
	case value > max*2:
		return 45
	}
	return 35
}

// scoreCompetitionLevel scores inversely to expected competition: a base
// from the count of strong competitors in the sector, derated for
// high-value contracts which attract more bidders.
func (e *Engine) scoreCompetitionLevel(sector string, value float64) int {
	strong := 0
	for _, c := range e.competitors[sector] {
		if c.Strength == CompetitorStrong {
			strong++
		}
	}

	base := 90
	switch {
	case strong >= 3:
		base = 50
	case strong >= 2:
		base = 65
	case strong >= 1:
		base = 75
	}

	multiplier := 1.0
	if value > 100_000_000 {
		multiplier = 0.8
	} else if value > 50_000_000 {
		multiplier = 0.9
	}

	return int(math.Round(float64(base) * multiplier))
}

// scoreClientRelationship checks for an existing relationship by
// case-insensitive substring match in either direction.
func (e *Engine) scoreClientRelationship(client string, existingClients []string) int {
	if client == "" {
		return 50
	}
	lower := strings.ToLower(client)
	for _, existing := range existingClients {
		el := strings.ToLower(existing)
		if strings.Contains(el, lower) || strings.Contains(lower, el) {
			return 90
		}
	}
	return 55
}

// scoreTiming buckets days until the bid deadline. The 30-90 day window
// is ideal; a passed deadline scores 30.
func (e *Engine) scoreTiming(bidDeadline *time.Time, now time.Time) int {
	if bidDeadline == nil {
		return 50
	}
	days := int(math.Floor(bidDeadline.Sub(now).Hours() / 24))

	switch {
	case days >= 30 && days <= 90:
		return 95
	case days >= 14 && days < 30:
		return 75
	case days > 90 && days <= 180:
		return 80
	case days > 0 && days < 14:
		return 50
	case days > 180:
		return 60
	}
	return 30
}
