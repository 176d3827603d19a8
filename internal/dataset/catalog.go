// Package dataset loads the static JSON datasets the dashboard is built
// on: regions, sectors, clients, opportunities and budget allocations.
// Defaults are embedded; a data directory can override any file. Once
// loaded, a Catalog is read-only.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oliver/market-intel/internal/models"
)

//go:embed data/*.json
var defaultData embed.FS

type Catalog struct {
	Regions       []models.Region
	Sectors       []models.Sector
	Clients       []models.Client
	Opportunities []models.Opportunity
	Budgets       []models.BudgetAllocation

	regionsByID map[string]models.Region
	sectorsByID map[string]models.Sector
	clientsByID map[string]models.Client
	oppsByID    map[string]models.Opportunity
}

type regionsFile struct {
	Regions []models.Region `json:"regions"`
}
type sectorsFile struct {
	Sectors []models.Sector `json:"sectors"`
}
type clientsFile struct {
	Clients []models.Client `json:"clients"`
}
type opportunitiesFile struct {
	Opportunities []models.Opportunity `json:"opportunities"`
}
type budgetsFile struct {
	Allocations []models.BudgetAllocation `json:"allocations"`
}

// Load reads every dataset. Files present under dir take precedence over
// the embedded defaults; dir may be empty.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}

	var regions regionsFile
	if err := loadJSON(dir, "regions.json", &regions); err != nil {
		return nil, err
	}
	var sectors sectorsFile
	if err := loadJSON(dir, "sectors.json", &sectors); err != nil {
		return nil, err
	}
	var clients clientsFile
	if err := loadJSON(dir, "clients.json", &clients); err != nil {
		return nil, err
	}
	var opps opportunitiesFile
	if err := loadJSON(dir, "opportunities.json", &opps); err != nil {
		return nil, err
	}
	var budgets budgetsFile
	if err := loadJSON(dir, "budgets.json", &budgets); err != nil {
		return nil, err
	}

	c.Regions = regions.Regions
	c.Sectors = sectors.Sectors
	c.Clients = clients.Clients
	c.Opportunities = opps.Opportunities
	c.Budgets = budgets.Allocations
	c.index()
	return c, nil
}

func loadJSON(dir, name string, v any) error {
	if dir != "" {
		path := filepath.Join(dir, name)
		if b, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(b, v); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	b, err := defaultData.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode embedded %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) index() {
	c.regionsByID = make(map[string]models.Region, len(c.Regions))
	for _, r := range c.Regions {
		c.regionsByID[r.ID] = r
	}
	c.sectorsByID = make(map[string]models.Sector, len(c.Sectors))
	for _, s := range c.Sectors {
		c.sectorsByID[s.ID] = s
	}
	c.clientsByID = make(map[string]models.Client, len(c.Clients))
	for _, cl := range c.Clients {
		c.clientsByID[cl.ID] = cl
	}
	c.oppsByID = make(map[string]models.Opportunity, len(c.Opportunities))
	for _, o := range c.Opportunities {
		c.oppsByID[o.ID] = o
	}
}

func (c *Catalog) Region(id string) (models.Region, bool) {
	r, ok := c.regionsByID[id]
	return r, ok
}

func (c *Catalog) Sector(id string) (models.Sector, bool) {
	s, ok := c.sectorsByID[id]
	return s, ok
}

func (c *Catalog) Client(id string) (models.Client, bool) {
	cl, ok := c.clientsByID[id]
	return cl, ok
}

func (c *Catalog) Opportunity(id string) (models.Opportunity, bool) {
	o, ok := c.oppsByID[id]
	return o, ok
}

// ClientNames returns every client name, the relationship context for
// bid scoring.
func (c *Catalog) ClientNames() []string {
	names := make([]string, 0, len(c.Clients))
	for _, cl := range c.Clients {
		names = append(names, cl.Name)
	}
	return names
}

// ClientsByRegion returns clients operating in the region; "national"
// clients operate everywhere.
func (c *Catalog) ClientsByRegion(regionID string) []models.Client {
	var out []models.Client
	for _, cl := range c.Clients {
		for _, r := range cl.Regions {
			if r == regionID || r == "national" {
				out = append(out, cl)
				break
			}
		}
	}
	return out
}

func (c *Catalog) ClientsBySector(sectorID string) []models.Client {
	var out []models.Client
	for _, cl := range c.Clients {
		if cl.Sector == sectorID {
			out = append(out, cl)
		}
	}
	return out
}

func (c *Catalog) OpportunitiesByRegion(regionID string) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range c.Opportunities {
		if o.Region == regionID {
			out = append(out, o)
		}
	}
	return out
}

func (c *Catalog) OpportunitiesBySector(sectorID string) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range c.Opportunities {
		if o.Sector == sectorID {
			out = append(out, o)
		}
	}
	return out
}

func (c *Catalog) BudgetsByRegion(regionID string) []models.BudgetAllocation {
	var out []models.BudgetAllocation
	for _, b := range c.Budgets {
		if b.Region == regionID {
			out = append(out, b)
		}
	}
	return out
}

// TotalBudget sums client budgets for a horizon: "10year" for the
// ten-year programme, anything else for 2026.
func (c *Catalog) TotalBudget(horizon string) float64 {
	var total float64
	for _, cl := range c.Clients {
		if horizon == "10year" {
			total += cl.Budget10Year
		} else {
			total += cl.Budget2026
		}
	}
	return total
}

// RegionTotal is a region annotated with client and opportunity counts.
type RegionTotal struct {
	models.Region
	ClientCount      int `json:"client_count"`
	OpportunityCount int `json:"opportunity_count"`
}

func (c *Catalog) RegionalTotals() []RegionTotal {
	totals := make([]RegionTotal, 0, len(c.Regions))
	for _, r := range c.Regions {
		totals = append(totals, RegionTotal{
			Region:           r,
			ClientCount:      len(c.ClientsByRegion(r.ID)),
			OpportunityCount: len(c.OpportunitiesByRegion(r.ID)),
		})
	}
	return totals
}

// SectorTotal is a sector annotated with client and opportunity counts.
type SectorTotal struct {
	models.Sector
	ClientCount      int `json:"client_count"`
	OpportunityCount int `json:"opportunity_count"`
}

func (c *Catalog) SectorTotals() []SectorTotal {
	totals := make([]SectorTotal, 0, len(c.Sectors))
	for _, s := range c.Sectors {
		totals = append(totals, SectorTotal{
			Sector:           s,
			ClientCount:      len(c.ClientsBySector(s.ID)),
			OpportunityCount: len(c.OpportunitiesBySector(s.ID)),
		})
	}
	return totals
}

// Filter narrows the opportunity list. Zero values mean "no constraint".
type Filter struct {
	Query    string
	Region   string
	Sector   string
	Client   string
	Status   models.Status
	MinValue float64
	MaxValue float64
	SortBy   string // "value", "deadline" or "" for input order
}

// FilterOpportunities applies the filter, preserving input order unless a
// sort is requested.
func (c *Catalog) FilterOpportunities(f Filter) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(c.Opportunities))
	q := strings.ToLower(f.Query)

	for _, o := range c.Opportunities {
		if f.Region != "" && o.Region != f.Region {
			continue
		}
		if f.Sector != "" && o.Sector != f.Sector {
			continue
		}
		if f.Client != "" && !strings.Contains(strings.ToLower(o.Client), strings.ToLower(f.Client)) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.MinValue > 0 && o.Value < f.MinValue {
			continue
		}
		if f.MaxValue > 0 && o.Value > f.MaxValue {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(o.Title), q) {
			continue
		}
		out = append(out, o)
	}

	switch f.SortBy {
	case "value":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	case "deadline":
		sort.SliceStable(out, func(i, j int) bool {
			// Opportunities without a deadline sort last.
			if out[i].BidDeadline == nil {
				return false
			}
			if out[j].BidDeadline == nil {
				return true
			}
			return out[i].BidDeadline.Before(*out[j].BidDeadline)
		})
	}
	return out
}
