package intel

import "strings"

// ExpertiseLevel grades sector capability. Anything unparsed maps to
// LevelUnknown, which scores as an unfamiliar sector rather than failing.
type ExpertiseLevel string

const (
	LevelExpert   ExpertiseLevel = "expert"
	LevelStrong   ExpertiseLevel = "strong"
	LevelModerate ExpertiseLevel = "moderate"
	LevelUnknown  ExpertiseLevel = "unknown"
)

func ParseExpertiseLevel(s string) ExpertiseLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expert":
		return LevelExpert
	case "strong":
		return LevelStrong
	case "moderate":
		return LevelModerate
	}
	return LevelUnknown
}

// CompetitorStrength grades a competitor within a sector.
type CompetitorStrength string

const (
	CompetitorStrong   CompetitorStrength = "strong"
	CompetitorModerate CompetitorStrength = "moderate"
)

type SectorExpertise struct {
	Level   ExpertiseLevel `json:"level" yaml:"level"`
	WinRate float64        `json:"win_rate" yaml:"win_rate"`
}

type ValueRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// CompanyProfile is the operator's capability profile. It is loaded once
// at startup and read-only thereafter.
type CompanyProfile struct {
	Name          string                     `json:"name" yaml:"name"`
	StrongRegions []string                   `json:"strong_regions" yaml:"strong_regions"`
	SweetSpot     ValueRange                 `json:"sweet_spot_value" yaml:"sweet_spot_value"`
	Expertise     map[string]SectorExpertise `json:"expertise" yaml:"expertise"`
	Services      []string                   `json:"services" yaml:"services"`
}

// Competitor is a known rival within one sector.
type Competitor struct {
	Name     string             `json:"name" yaml:"name"`
	Strength CompetitorStrength `json:"strength" yaml:"strength"`
	Focus    []string           `json:"focus" yaml:"focus"`
}

// CompetitorDirectory maps sector ID to the known competitors in it.
type CompetitorDirectory map[string][]Competitor

// DefaultProfile returns the built-in capability profile. Deployments can
// replace it via the profile YAML file.
func DefaultProfile() CompanyProfile {
	return CompanyProfile{
		Name:          "Gleeds",
		StrongRegions: []string{"london", "north-west", "midlands", "scotland"},
		SweetSpot:     ValueRange{Min: 5_000_000, Max: 500_000_000},
		Expertise: map[string]SectorExpertise{
			"rail":     {Level: LevelExpert, WinRate: 0.35},
			"aviation": {Level: LevelExpert, WinRate: 0.30},
			"highways": {Level: LevelStrong, WinRate: 0.28},
			"utilities": {Level: LevelStrong, WinRate: 0.25},
			"maritime": {Level: LevelModerate, WinRate: 0.20},
		},
		Services: []string{"cost-management", "project-management", "programme-management", "advisory"},
	}
}

// DefaultCompetitors returns the built-in competitor directory.
func DefaultCompetitors() CompetitorDirectory {
	return CompetitorDirectory{
		"rail": {
			{Name: "Turner & Townsend", Strength: CompetitorStrong, Focus: []string{"cost", "pm"}},
			{Name: "Mace", Strength: CompetitorStrong, Focus: []string{"delivery", "pm"}},
			{Name: "Arcadis", Strength: CompetitorStrong, Focus: []string{"advisory", "cost"}},
			{Name: "AECOM", Strength: CompetitorModerate, Focus: []string{"design", "pm"}},
			{Name: "Faithful+Gould", Strength: CompetitorModerate, Focus: []string{"cost"}},
		},
		"aviation": {
			{Name: "Turner & Townsend", Strength: CompetitorStrong, Focus: []string{"cost", "pm"}},
			{Name: "Mace", Strength: CompetitorStrong, Focus: []string{"delivery"}},
			{Name: "Arcadis", Strength: CompetitorModerate, Focus: []string{"advisory"}},
			{Name: "Arup", Strength: CompetitorModerate, Focus: []string{"design", "advisory"}},
		},
		"highways": {
			{Name: "Turner & Townsend", Strength: CompetitorStrong, Focus: []string{"cost", "pm"}},
			{Name: "AECOM", Strength: CompetitorStrong, Focus: []string{"design", "pm"}},
			{Name: "Jacobs", Strength: CompetitorStrong, Focus: []string{"design", "delivery"}},
			{Name: "WSP", Strength: CompetitorModerate, Focus: []string{"design"}},
			{Name: "Atkins", Strength: CompetitorModerate, Focus: []string{"design", "pm"}},
		},
		"utilities": {
			{Name: "Mott MacDonald", Strength: CompetitorStrong, Focus: []string{"design", "pm"}},
			{Name: "Jacobs", Strength: CompetitorStrong, Focus: []string{"design"}},
			{Name: "Arcadis", Strength: CompetitorModerate, Focus: []string{"advisory", "cost"}},
			{Name: "Stantec", Strength: CompetitorModerate, Focus: []string{"design"}},
		},
		"maritime": {
			{Name: "Royal HaskoningDHV", Strength: CompetitorStrong, Focus: []string{"design"}},
			{Name: "Arup", Strength: CompetitorModerate, Focus: []string{"design", "advisory"}},
			{Name: "Mott MacDonald", Strength: CompetitorModerate, Focus: []string{"design", "pm"}},
		},
	}
}
