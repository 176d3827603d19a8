package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, kind Kind) *Session {
	t.Helper()
	s, err := NewSession("s-1", kind, "subject-1")
	require.NoError(t, err)
	return s
}

func TestNewSession_StartsAtWelcome(t *testing.T) {
	s := newTestSession(t, KindOpportunity)

	assert.Equal(t, WelcomeSection, s.Section)
	assert.Empty(t, s.Answers)
	assert.False(t, s.AtEnd())
}

func TestNewSession_UnknownKind(t *testing.T) {
	_, err := NewSession("s-1", Kind("banana"), "")
	assert.Error(t, err)
}

func TestSessionNavigation(t *testing.T) {
	s := newTestSession(t, KindOpportunity)
	last := len(OpportunitySections) - 1

	s.Start()
	assert.Equal(t, 0, s.Section)

	s.Prev()
	assert.Equal(t, WelcomeSection, s.Section)

	s.Prev() // already at welcome, stays put
	assert.Equal(t, WelcomeSection, s.Section)

	s.Start()
	for i := 0; i < len(OpportunitySections)+3; i++ {
		s.Next()
	}
	assert.Equal(t, last, s.Section)
	assert.True(t, s.AtEnd())
}

func TestSessionGoto(t *testing.T) {
	s := newTestSession(t, KindRegion)

	require.NoError(t, s.Goto(2))
	assert.Equal(t, 2, s.Section)

	assert.ErrorIs(t, s.Goto(-1), ErrInvalidSection)
	assert.ErrorIs(t, s.Goto(len(RegionSections)), ErrInvalidSection)
	assert.Equal(t, 2, s.Section)
}

func TestSessionAnswer(t *testing.T) {
	s := newTestSession(t, KindOpportunity)

	require.NoError(t, s.Answer("client_experience", 3))
	assert.Equal(t, 3, s.Answers["client_experience"])

	// Re-answering replaces the previous value.
	require.NoError(t, s.Answer("client_experience", 1))
	assert.Equal(t, 1, s.Answers["client_experience"])

	assert.ErrorIs(t, s.Answer("client_experience", 4), ErrInvalidAnswer)
	assert.ErrorIs(t, s.Answer("client_experience", -1), ErrInvalidAnswer)
	assert.ErrorIs(t, s.Answer("office_presence", 2), ErrUnknownQuestion) // region question
}

func TestSessionRetake(t *testing.T) {
	s := newTestSession(t, KindOpportunity)
	require.NoError(t, s.Answer("bid_team", 2))
	s.Start()
	s.Next()

	s.Retake()
	assert.Equal(t, WelcomeSection, s.Section)
	assert.Empty(t, s.Answers)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newTestSession(t, KindOpportunity)
	b, err := NewSession("s-2", KindOpportunity, "subject-2")
	require.NoError(t, err)

	require.NoError(t, a.Answer("bid_team", 3))
	assert.Empty(t, b.Answers)
}

func TestRestore(t *testing.T) {
	s := &Session{ID: "s-1", Kind: KindRegion, Section: 1}

	require.NoError(t, Restore(s))
	assert.NotNil(t, s.Answers)
	require.NoError(t, s.Answer("office_presence", 2))

	bad := &Session{ID: "s-2", Kind: Kind("nope")}
	assert.Error(t, Restore(bad))
}

func TestCatalogFor(t *testing.T) {
	opp, err := CatalogFor(KindOpportunity)
	require.NoError(t, err)
	assert.Len(t, opp, 5)

	region, err := CatalogFor(KindRegion)
	require.NoError(t, err)
	assert.Len(t, region, 5)

	_, err = CatalogFor(Kind(""))
	assert.Error(t, err)
}
