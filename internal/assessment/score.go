package assessment

import "math"

// SectionScore is the 0-100 sub-aggregate for one section.
type SectionScore struct {
	Score int    `json:"score"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Strength is an answered question scoring 2 or 3.
type Strength struct {
	SectionID  string `json:"section_id"`
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Section    string `json:"section"`
}

// Weakness is an answered question scoring 0 or 1, carrying the
// question's insight for downstream mitigation.
type Weakness struct {
	SectionID  string `json:"section_id"`
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Section    string `json:"section"`
	Insight    string `json:"insight"`
}

// ScoreResult is the weighted aggregate of an answer set over a catalog.
type ScoreResult struct {
	OverallScore  int                     `json:"overall_score"`
	SectionScores map[string]SectionScore `json:"section_scores"`
	Strengths     []Strength              `json:"strengths"`
	Weaknesses    []Weakness              `json:"weaknesses"`
}

// Score aggregates answers over a catalog. Only answered questions count:
// each contributes answer*weight against a maximum of 3*weight, per
// section and overall. A section with no answered questions scores 0
// rather than dividing by zero. Overall score is round(100 * sum / max).
func Score(catalog Catalog, answers AnswerSet) ScoreResult {
	result := ScoreResult{
		SectionScores: make(map[string]SectionScore, len(catalog)),
	}

	var totalWeighted, totalWeight float64

	for _, section := range catalog {
		var sectionWeighted, sectionWeight float64

		for _, question := range section.Questions {
			answer, ok := answers[question.ID]
			if !ok {
				continue
			}

			weighted := float64(answer) * question.Weight
			sectionWeighted += weighted
			sectionWeight += question.Weight * 3
			totalWeighted += weighted
			totalWeight += question.Weight * 3

			if answer >= 2 {
				result.Strengths = append(result.Strengths, Strength{
					SectionID:  section.ID,
					QuestionID: question.ID,
					Question:   question.Text,
					Answer:     question.OptionLabel(answer),
					Section:    section.Title,
				})
			} else {
				result.Weaknesses = append(result.Weaknesses, Weakness{
					SectionID:  section.ID,
					QuestionID: question.ID,
					Question:   question.Text,
					Answer:     question.OptionLabel(answer),
					Section:    section.Title,
					Insight:    question.Insight,
				})
			}
		}

		score := 0
		if sectionWeight > 0 {
			score = int(math.Round(sectionWeighted / sectionWeight * 100))
		}
		result.SectionScores[section.ID] = SectionScore{
			Score: score,
			Title: section.Title,
			Icon:  section.Icon,
		}
	}

	if totalWeight > 0 {
		result.OverallScore = int(math.Round(totalWeighted / totalWeight * 100))
	}
	return result
}
