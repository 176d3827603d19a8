package assessment

// Option is one selectable answer for a question. Values run 0 (worst)
// to 3 (best).
type Option struct {
	Value int    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Question is an immutable catalog entry. Weight scales the question's
// contribution to its section and the overall score.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Options []Option `json:"options" yaml:"options"`
	Weight  float64  `json:"weight" yaml:"weight"`
	Insight string   `json:"insight" yaml:"insight"`
}

// OptionLabel returns the label for an answer value, or "" if the value
// is not one of the question's options.
func (q Question) OptionLabel(value int) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

// Section is a thematic group of questions.
type Section struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Icon      string     `json:"icon" yaml:"icon"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Catalog is a fixed question bank. The two built-in catalogs are
// initialised once and never mutated, so they are safe to share.
type Catalog []Section

// Question finds a question by ID across all sections.
func (c Catalog) Question(id string) (Question, bool) {
	for _, section := range c {
		for _, q := range section.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// AnswerSet maps question ID to the chosen option value. Partial sets are
// valid: unanswered questions simply contribute nothing.
type AnswerSet map[string]int

// OpportunitySections is the go/no-go question bank: five sections of
// three weighted questions.
var OpportunitySections = Catalog{
	{
		ID:    "capability",
		Title: "Capability Check",
		Icon:  "target",
		Questions: []Question{
			{
				ID:   "client_experience",
				Text: "Have we worked with this client before?",
				Options: []Option{
					{Value: 3, Label: "Yes, strong ongoing relationship"},
					{Value: 2, Label: "Yes, but limited or past engagement"},
					{Value: 1, Label: "No, but we have contacts/connections"},
					{Value: 0, Label: "No relationship at all"},
				},
				Weight:  1.2,
				Insight: "Client relationships significantly impact win rates",
			},
			{
				ID:   "sector_experience",
				Text: "How much experience do we have in this sector?",
				Options: []Option{
					{Value: 3, Label: "Extensive - multiple similar projects delivered"},
					{Value: 2, Label: "Moderate - some relevant experience"},
					{Value: 1, Label: "Limited - but transferable skills"},
					{Value: 0, Label: "None - new sector for us"},
				},
				Weight:  1.3,
				Insight: "Demonstrable experience is often a key evaluation criterion",
			},
			{
				ID:   "technical_skills",
				Text: "Do we have the specialist skills this project requires?",
				Options: []Option{
					{Value: 3, Label: "Yes, all skills in-house"},
					{Value: 2, Label: "Mostly, may need minor support"},
					{Value: 1, Label: "Partially, would need to partner"},
					{Value: 0, Label: "No, significant gaps"},
				},
				Weight:  1.1,
				Insight: "Technical capability gaps can be addressed through partnerships",
			},
		},
	},
	{
		ID:    "resources",
		Title: "Resource Availability",
		Icon:  "people",
		Questions: []Question{
			{
				ID:   "bid_team",
				Text: "Can we field a strong bid team for this opportunity?",
				Options: []Option{
					{Value: 3, Label: "Yes, A-team available"},
					{Value: 2, Label: "Yes, good team available"},
					{Value: 1, Label: "Stretched, but manageable"},
					{Value: 0, Label: "No, key people unavailable"},
				},
				Weight:  1.0,
				Insight: "Bid quality directly correlates with team strength",
			},
			{
				ID:   "delivery_capacity",
				Text: "If we win, do we have capacity to deliver?",
				Options: []Option{
					{Value: 3, Label: "Yes, can mobilise immediately"},
					{Value: 2, Label: "Yes, with some reallocation"},
					{Value: 1, Label: "Tight, would need to recruit"},
					{Value: 0, Label: "No, over-committed currently"},
				},
				Weight:  1.2,
				Insight: "Winning work you cannot deliver damages reputation",
			},
			{
				ID:   "geographic_presence",
				Text: "Do we have presence in the project region?",
				Options: []Option{
					{Value: 3, Label: "Yes, established local office"},
					{Value: 2, Label: "Yes, nearby office or remote team"},
					{Value: 1, Label: "No, but willing to establish"},
					{Value: 0, Label: "No, and logistically difficult"},
				},
				Weight:  0.8,
				Insight: "Local presence can be a differentiator for clients",
			},
		},
	},
	{
		ID:    "strategic",
		Title: "Strategic Fit",
		Icon:  "chart",
		Questions: []Question{
			{
				ID:   "target_client",
				Text: "Is this a strategically important client for us?",
				Options: []Option{
					{Value: 3, Label: "Yes, top target client"},
					{Value: 2, Label: "Yes, growth target"},
					{Value: 1, Label: "Neutral, opportunistic"},
					{Value: 0, Label: "No, not aligned with strategy"},
				},
				Weight:  1.0,
				Insight: "Strategic clients may warrant investment even at lower margins",
			},
			{
				ID:   "sector_strategy",
				Text: "Does this align with our sector growth strategy?",
				Options: []Option{
					{Value: 3, Label: "Yes, core growth sector"},
					{Value: 2, Label: "Yes, complementary sector"},
					{Value: 1, Label: "Neutral"},
					{Value: 0, Label: "No, divesting from this sector"},
				},
				Weight:  0.9,
				Insight: "Strategic alignment affects long-term value",
			},
			{
				ID:   "reference_value",
				Text: "Would winning this enhance our credentials?",
				Options: []Option{
					{Value: 3, Label: "Yes, landmark/flagship project"},
					{Value: 2, Label: "Yes, good portfolio addition"},
					{Value: 1, Label: "Standard, routine project"},
					{Value: 0, Label: "No, potentially reputational risk"},
				},
				Weight:  0.8,
				Insight: "Reference projects open doors to future work",
			},
		},
	},
	{
		ID:    "competitive",
		Title: "Competitive Position",
		Icon:  "swords",
		Questions: []Question{
			{
				ID:   "competitor_landscape",
				Text: "How competitive is this opportunity?",
				Options: []Option{
					{Value: 3, Label: "Limited competition expected"},
					{Value: 2, Label: "Moderate - 3-5 credible bidders"},
					{Value: 1, Label: "Highly competitive - many bidders"},
					{Value: 0, Label: "Incumbent strongly favoured"},
				},
				Weight:  1.1,
				Insight: "Competition level affects win probability and pricing",
			},
			{
				ID:   "differentiator",
				Text: "Do we have a clear differentiator for this bid?",
				Options: []Option{
					{Value: 3, Label: "Yes, unique value proposition"},
					{Value: 2, Label: "Yes, some competitive advantages"},
					{Value: 1, Label: "Limited, similar to competitors"},
					{Value: 0, Label: "No, we would be an outsider"},
				},
				Weight:  1.2,
				Insight: "Clear differentiation is key to winning competitive bids",
			},
			{
				ID:   "price_position",
				Text: "Can we be competitive on price?",
				Options: []Option{
					{Value: 3, Label: "Yes, and maintain good margins"},
					{Value: 2, Label: "Yes, with acceptable margins"},
					{Value: 1, Label: "Tight, may need to be aggressive"},
					{Value: 0, Label: "No, our rates are too high"},
				},
				Weight:  1.0,
				Insight: "Price competitiveness varies by sector and client",
			},
		},
	},
	{
		ID:    "commercial",
		Title: "Commercial Viability",
		Icon:  "money",
		Questions: []Question{
			{
				ID:   "fee_potential",
				Text: "What is the fee potential relative to bid cost?",
				Options: []Option{
					{Value: 3, Label: "High - excellent ROI on bid investment"},
					{Value: 2, Label: "Good - reasonable return expected"},
					{Value: 1, Label: "Marginal - low fee or high bid cost"},
					{Value: 0, Label: "Poor - bid cost may exceed fees"},
				},
				Weight:  1.1,
				Insight: "Bid investment should be proportional to opportunity value",
			},
			{
				ID:   "payment_terms",
				Text: "Are the expected payment terms acceptable?",
				Options: []Option{
					{Value: 3, Label: "Yes, standard or better terms"},
					{Value: 2, Label: "Acceptable with some caveats"},
					{Value: 1, Label: "Challenging but manageable"},
					{Value: 0, Label: "Unacceptable terms expected"},
				},
				Weight:  0.7,
				Insight: "Payment terms affect cash flow and risk",
			},
			{
				ID:   "follow_on",
				Text: "Is there potential for follow-on work?",
				Options: []Option{
					{Value: 3, Label: "Yes, significant pipeline potential"},
					{Value: 2, Label: "Yes, some additional phases likely"},
					{Value: 1, Label: "Possibly, depends on performance"},
					{Value: 0, Label: "No, one-off engagement"},
				},
				Weight:  0.9,
				Insight: "Follow-on potential increases lifetime value",
			},
		},
	},
}
