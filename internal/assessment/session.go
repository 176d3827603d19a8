package assessment

import (
	"errors"
	"fmt"
	"time"
)

// Kind selects which question bank a session walks through.
type Kind string

const (
	KindOpportunity Kind = "opportunity"
	KindRegion      Kind = "region"
)

// CatalogFor returns the question bank for a session kind.
func CatalogFor(kind Kind) (Catalog, error) {
	switch kind {
	case KindOpportunity:
		return OpportunitySections, nil
	case KindRegion:
		return RegionSections, nil
	}
	return nil, fmt.Errorf("unknown assessment kind %q", kind)
}

// WelcomeSection is the pre-assessment position, before section 0.
const WelcomeSection = -1

var (
	ErrUnknownQuestion = errors.New("question not in catalog")
	ErrInvalidAnswer   = errors.New("answer value must be between 0 and 3")
	ErrInvalidSection  = errors.New("section index out of range")
	ErrNotAtEnd        = errors.New("results only available from the final section")
)

// Session is one walk through a question bank. It owns its answer set
// exclusively: answers live here, never in package state, so any number
// of sessions can run side by side. A session is not safe for concurrent
// use; the session manager serialises mutations and hands callers
// independent copies.
type Session struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	SubjectID string    `json:"subject_id"`
	Section   int       `json:"section"`
	Answers   AnswerSet `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	catalog Catalog
}

// NewSession starts a session at the welcome position with no answers.
func NewSession(id string, kind Kind, subjectID string) (*Session, error) {
	catalog, err := CatalogFor(kind)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Kind:      kind,
		SubjectID: subjectID,
		Section:   WelcomeSection,
		Answers:   AnswerSet{},
		CreatedAt: now,
		UpdatedAt: now,
		catalog:   catalog,
	}, nil
}

// Restore rebuilds a session loaded from the cache, reattaching its
// catalog.
func Restore(s *Session) error {
	catalog, err := CatalogFor(s.Kind)
	if err != nil {
		return err
	}
	if s.Answers == nil {
		s.Answers = AnswerSet{}
	}
	s.catalog = catalog
	return nil
}

func (s *Session) Catalog() Catalog { return s.catalog }

// Clone returns an independent copy. Readers must never share the live
// answer map with a concurrent mutation.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = make(AnswerSet, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	return &c
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// Start moves from welcome to the first section. Starting mid-assessment
// just returns to section 0.
func (s *Session) Start() {
	s.Section = 0
	s.touch()
}

// Next advances one section, stopping at the last.
func (s *Session) Next() {
	if s.Section < len(s.catalog)-1 {
		s.Section++
		s.touch()
	}
}

// Prev steps back one section; from section 0 it returns to welcome.
func (s *Session) Prev() {
	if s.Section > WelcomeSection {
		s.Section--
		s.touch()
	}
}

// Goto jumps to a section by index.
func (s *Session) Goto(index int) error {
	if index < 0 || index >= len(s.catalog) {
		return ErrInvalidSection
	}
	s.Section = index
	s.touch()
	return nil
}

// Answer records one answer. Answers are applied in the order received;
// scoring always reflects the set as of the latest call.
func (s *Session) Answer(questionID string, value int) error {
	if value < 0 || value > 3 {
		return ErrInvalidAnswer
	}
	if _, ok := s.catalog.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	s.Answers[questionID] = value
	s.touch()
	return nil
}

// AtEnd reports whether the session sits on the final section, the only
// position results may be requested from.
func (s *Session) AtEnd() bool {
	return s.Section == len(s.catalog)-1
}

// Retake resets to welcome and discards every answer. Abandoning a
// session needs no cleanup beyond letting it go.
func (s *Session) Retake() {
	s.Section = WelcomeSection
	s.Answers = AnswerSet{}
	s.touch()
}
