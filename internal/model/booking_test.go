package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	cases := []struct {
		in   string
		want State
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"all", StateAll},
		{"  current ", StateCurrent},
		{"PAST", StatePast},
		{"future", StateFuture},
		{"WAITING", StateWaiting},
		{"rejected", StateRejected},
	}
	for _, tc := range cases {
		got, err := ParseState(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := ParseState("SOMEDAY")
	assert.Error(t, err)
	_, err = ParseState("CANCELED")
	assert.Error(t, err, "CANCELED is a status, not a list filter")
}

func TestStateMatches(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	current := Booking{Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: StatusApproved}
	past := Booking{Start: now.Add(-3 * time.Hour), End: now.Add(-time.Hour), Status: StatusApproved}
	future := Booking{Start: now.Add(time.Hour), End: now.Add(3 * time.Hour), Status: StatusWaiting}
	rejected := Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusRejected}

	assert.True(t, StateMatches(current, StateCurrent, now))
	assert.False(t, StateMatches(past, StateCurrent, now))
	assert.False(t, StateMatches(future, StateCurrent, now))

	assert.True(t, StateMatches(past, StatePast, now))
	assert.False(t, StateMatches(current, StatePast, now))

	assert.True(t, StateMatches(future, StateFuture, now))
	assert.False(t, StateMatches(current, StateFuture, now))

	assert.True(t, StateMatches(future, StateWaiting, now))
	assert.False(t, StateMatches(current, StateWaiting, now))

	assert.True(t, StateMatches(rejected, StateRejected, now))
	assert.False(t, StateMatches(future, StateRejected, now))

	for _, b := range []Booking{current, past, future, rejected} {
		assert.True(t, StateMatches(b, StateAll, now))
	}
}

func TestStateMatchesBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// A booking starting exactly now is neither CURRENT nor FUTURE:
	// the comparisons are strict.
	atStart := Booking{Start: now, End: now.Add(time.Hour)}
	assert.False(t, StateMatches(atStart, StateCurrent, now))
	assert.False(t, StateMatches(atStart, StateFuture, now))

	// A booking ending exactly now is neither CURRENT nor PAST.
	atEnd := Booking{Start: now.Add(-time.Hour), End: now}
	assert.False(t, StateMatches(atEnd, StateCurrent, now))
	assert.False(t, StateMatches(atEnd, StatePast, now))
}
