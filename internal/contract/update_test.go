package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEventRejectsEmptyUpdate(t *testing.T) {
	_, err := Update{}.BuildEvent("c1", "alex", time.Now())
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	// An unparsable budget alone still counts as empty.
	_, err = Update{Budget: "not-a-number"}.BuildEvent("c1", "alex", time.Now())
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestBuildEventAssemblesChanges(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	ev, err := Update{
		Status:    StatusSigned,
		Budget:    "1500",
		StartDate: &start,
	}.BuildEvent("c7", "casey", now)
	require.NoError(t, err)

	assert.Equal(t, "c7", ev.ContractID)
	assert.Equal(t, "casey", ev.Actor)
	assert.Equal(t, now, ev.Timestamp)
	assert.Equal(t, StatusSigned, ev.Changes["status"])
	assert.Equal(t, 1500.0, ev.Changes["budget"])
	assert.Equal(t, "2026-09-01T00:00:00Z", ev.Changes["start_date"])
	assert.NotContains(t, ev.Changes, "end_date")
	assert.NotContains(t, ev.Changes, "deliverable_note")
}

func TestJurisdictionLookup(t *testing.T) {
	text, ok := ApplicableLaws("uk")
	require.True(t, ok)
	assert.Contains(t, text, "England")

	_, ok = ApplicableLaws(JurisdictionCustom)
	assert.False(t, ok)

	_, ok = ApplicableLaws("atlantis")
	assert.False(t, ok)

	keys := Jurisdictions()
	assert.Equal(t, JurisdictionCustom, keys[len(keys)-1])
}
