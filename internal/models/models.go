package models

import "time"

// Status is the delivery stage of an opportunity. Unknown values loaded
// from data files are preserved as-is and treated as StatusPlanning when a
// stage bucket is required.
type Status string

const (
	StatusPlanning       Status = "planning"
	StatusPreProcurement Status = "pre-procurement"
	StatusProcurement    Status = "procurement"
	StatusDelivery       Status = "delivery"
	StatusComplete       Status = "complete"
)

// Known reports whether the status is one of the recognised stages.
func (s Status) Known() bool {
	switch s {
	case StatusPlanning, StatusPreProcurement, StatusProcurement, StatusDelivery, StatusComplete:
		return true
	}
	return false
}

// Bucket maps any status onto a recognised stage, defaulting unknown
// values to planning.
func (s Status) Bucket() Status {
	if s.Known() {
		return s
	}
	return StatusPlanning
}

// Opportunity is a single market opportunity. Scoring treats it as a pure
// read: nothing in the engine mutates an opportunity after load.
type Opportunity struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Sector        string     `json:"sector"`
	Region        string     `json:"region"`
	Client        string     `json:"client"`
	Value         float64    `json:"value"`
	BidDeadline   *time.Time `json:"bid_deadline,omitempty"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	Status        Status     `json:"status"`
}

// Region is a UK region with its published infrastructure budgets.
type Region struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Budget2026   float64 `json:"budget_2026"`
	Budget10Year float64 `json:"budget_10_year"`
}

type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is a buying organisation. Regions lists the region IDs the client
// operates in; "national" means every region.
type Client struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector"`
	Regions      []string `json:"regions"`
	Budget2026   float64  `json:"budget_2026"`
	Budget10Year float64  `json:"budget_10_year"`
}

// BudgetAllocation is a region/sector slice of published spend.
type BudgetAllocation struct {
	Region string  `json:"region"`
	Sector string  `json:"sector"`
	Amount float64 `json:"amount"`
	Period string  `json:"period"`
}
