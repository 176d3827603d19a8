// Runs an assessment from a JSON answers file and prints the scored
// result. Answers map question IDs to values 0-3, e.g.
// {"client_experience": 3, "bid_team": 1}.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oliver/market-intel/internal/assessment"
	"github.com/oliver/market-intel/internal/dataset"
	"github.com/oliver/market-intel/internal/models"
)

func main() {
	kindStr := flag.String("kind", "opportunity", "assessment kind: opportunity or region")
	answersPath := flag.String("answers", "", "path to JSON answers file (required)")
	subjectID := flag.String("subject", "", "opportunity or region ID from the dataset")
	dataDir := flag.String("data", "", "directory of dataset overrides (defaults embedded)")
	asJSON := flag.Bool("json", false, "print the full result as JSON")
	flag.Parse()

	if *answersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	kind := assessment.Kind(*kindStr)
	sections, err := assessment.CatalogFor(kind)
	if err != nil {
		log.Fatal(err)
	}

	b, err := os.ReadFile(*answersPath)
	if err != nil {
		log.Fatal(err)
	}
	var answers assessment.AnswerSet
	if err := json.Unmarshal(b, &answers); err != nil {
		log.Fatalf("decode answers: %v", err)
	}

	catalog, err := dataset.Load(*dataDir)
	if err != nil {
		log.Fatal(err)
	}

	switch kind {
	case assessment.KindRegion:
		var region *models.Region
		if r, ok := catalog.Region(*subjectID); ok {
			region = &r
		}
		result := assessment.RegionAssessmentResult(answers, region)
		if *asJSON {
			printJSON(result)
			return
		}
		renderSections(os.Stdout, sections, result.SectionScores)
		fmt.Printf("\nScore: %d\n", result.Score)
		fmt.Printf("Recommendation: %s (%s)\n", result.Recommendation.Decision, result.Recommendation.Confidence)
		fmt.Println(result.Recommendation.Summary)
	default:
		var opp *models.Opportunity
		if o, ok := catalog.Opportunity(*subjectID); ok {
			opp = &o
		}
		result := assessment.AssessmentResult(answers, opp)
		if *asJSON {
			printJSON(result)
			return
		}
		renderSections(os.Stdout, sections, result.SectionScores)
		fmt.Printf("\nScore: %d\n", result.Score)
		fmt.Printf("Recommendation: %s (%s)\n", result.Recommendation.Decision, result.Recommendation.Confidence)
		fmt.Println(result.Recommendation.Summary)
	}
}

// renderSections prints section scores in the catalog's own order.
func renderSections(w io.Writer, sections assessment.Catalog, scores map[string]assessment.SectionScore) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Section", "Score"})
	for _, section := range sections {
		if s, ok := scores[section.ID]; ok {
			t.AppendRow(table.Row{s.Title, s.Score})
		}
	}
	t.Render()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}
