package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliver/market-intel/internal/assessment"
)

func sectionOrder(t *testing.T, sections assessment.Catalog) []int {
	t.Helper()

	scores := make(map[string]assessment.SectionScore, len(sections))
	for _, s := range sections {
		scores[s.ID] = assessment.SectionScore{Score: 50, Title: s.Title}
	}

	var buf bytes.Buffer
	renderSections(&buf, sections, scores)
	out := buf.String()

	positions := make([]int, 0, len(sections))
	for _, s := range sections {
		idx := strings.Index(out, s.Title)
		require.GreaterOrEqual(t, idx, 0, "section %s missing from output", s.ID)
		positions = append(positions, idx)
	}
	return positions
}

func TestRenderSections_FollowsCatalogOrder(t *testing.T) {
	for _, sections := range []assessment.Catalog{
		assessment.OpportunitySections,
		assessment.RegionSections,
	} {
		positions := sectionOrder(t, sections)
		for i := 1; i < len(positions); i++ {
			assert.Less(t, positions[i-1], positions[i])
		}
	}
}

func TestRenderSections_SkipsUnscoredSections(t *testing.T) {
	var buf bytes.Buffer
	renderSections(&buf, assessment.RegionSections, map[string]assessment.SectionScore{
		"presence": {Score: 80, Title: "Current Presence"},
	})

	out := buf.String()
	assert.Contains(t, out, "Current Presence")
	assert.NotContains(t, out, "Strategic Importance")
}
