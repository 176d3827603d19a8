// Ranks every opportunity in the dataset by bid score and prints the
// pipeline summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oliver/market-intel/internal/config"
	"github.com/oliver/market-intel/internal/dataset"
	"github.com/oliver/market-intel/internal/intel"
)

func main() {
	dataDir := flag.String("data", "", "directory of dataset overrides (defaults embedded)")
	profilePath := flag.String("profile", "", "company profile YAML (defaults built in)")
	flag.Parse()

	catalog, err := dataset.Load(*dataDir)
	if err != nil {
		log.Fatal(err)
	}
	profile, competitors, err := config.LoadProfile(*profilePath)
	if err != nil {
		log.Fatal(err)
	}
	engine := intel.NewEngine(profile, competitors)

	ctx := intel.Context{ExistingClients: catalog.ClientNames()}
	summary := engine.PipelineIntelligence(catalog.Opportunities, ctx)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Title", "Sector", "Region", "Value", "Score", "Win %", "Recommendation"})
	for i, s := range summary.Opportunities {
		t.AppendRow(table.Row{
			i + 1,
			s.Title,
			s.Sector,
			s.Region,
			fmt.Sprintf("£%.1fm", s.Value/1e6),
			s.Intelligence.TotalScore,
			s.Intelligence.WinProbability,
			s.Intelligence.Recommendation.Action,
		})
	}
	t.Render()

	fmt.Printf("\n%d opportunities: %d strong pursuit, %d pursue, %d selective, %d low priority\n",
		summary.Total,
		summary.StrongPursuits.Count,
		summary.Pursuits.Count,
		summary.Selective.Count,
		summary.LowPriority.Count)
	fmt.Printf("Strong pursuit value: £%.1fm (avg win %d%%)\n",
		summary.StrongPursuits.TotalValue/1e6,
		summary.StrongPursuits.AvgWinProbability)
}
