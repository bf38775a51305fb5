package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/player"
)

func testTracker(t *testing.T) (Tracker, *player.Player) {
	t.Helper()
	cat := catalog.Default()
	require.NoError(t, cat.Validate())
	return Tracker{Catalog: cat}, player.New("Climber")
}

func TestCheckMilestonesFiresInOrderAndOnce(t *testing.T) {
	tr, p := testTracker(t)

	p.Credits = 30000
	results := tr.CheckMilestones(p)
	require.Len(t, results, 1)
	assert.Equal(t, "ms_25k", results[0].MilestoneID)
	assert.Equal(t, 2, p.UnlockedTier)

	// No repeat on the next check.
	assert.Empty(t, tr.CheckMilestones(p))

	// A windfall can clear several thresholds in one check.
	p.Credits = 600000
	results = tr.CheckMilestones(p)
	assert.GreaterOrEqual(t, len(results), 2)
	assert.True(t, p.SeenMilestones["ms_500k"])
}

func TestMilestoneUnlocksLocation(t *testing.T) {
	tr, p := testTracker(t)
	p.Credits = 200000

	tr.CheckMilestones(p)
	assert.True(t, p.UnlockedLocations["loc_saturn"])
}

func TestPendingAgeEventsByDayAndCredits(t *testing.T) {
	tr, p := testTracker(t)

	assert.Empty(t, tr.PendingAgeEvents(p, 100))

	due := tr.PendingAgeEvents(p, 730)
	require.Len(t, due, 1)
	assert.Equal(t, "age_veteran", due[0].ID)

	// Unanswered events stay pending.
	due = tr.PendingAgeEvents(p, 731)
	assert.Len(t, due, 1)

	p.Credits = 200000
	due = tr.PendingAgeEvents(p, 731)
	assert.Len(t, due, 2)
}

func TestApplyAgeChoiceGrantsPerkAndTitle(t *testing.T) {
	tr, p := testTracker(t)

	granted, err := tr.ApplyAgeChoice(p, "age_commission", 0, func() string { return "v9" })
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.True(t, p.HasPerk("perk_captain"))
	assert.Equal(t, "Captain", p.Title)

	// Answered events never come due again.
	assert.Empty(t, tr.PendingAgeEvents(p, 100))
	_, err = tr.ApplyAgeChoice(p, "age_commission", 0, func() string { return "v9" })
	assert.ErrorIs(t, err, ErrUnknownChoice)
}

func TestApplyAgeChoiceGrantsShip(t *testing.T) {
	tr, p := testTracker(t)

	granted, err := tr.ApplyAgeChoice(p, "age_commission", 1, func() string { return "v9" })
	require.NoError(t, err)
	assert.Equal(t, "v9", granted)
	assert.Equal(t, "ship_stalwart", p.Ships["v9"].SpecID)
}

func TestApplyAgeChoiceRejectsBadIndex(t *testing.T) {
	tr, p := testTracker(t)

	_, err := tr.ApplyAgeChoice(p, "age_commission", 5, func() string { return "v9" })
	assert.ErrorIs(t, err, ErrUnknownChoice)
	_, err = tr.ApplyAgeChoice(p, "nope", 0, func() string { return "v9" })
	assert.ErrorIs(t, err, ErrUnknownChoice)
}
