package model

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus enumerates the lifecycle states of a booking. A
// booking is created WAITING and moves to APPROVED or REJECTED once
// the item's owner decides. CANCELED is part of the wire format but no
// operation currently produces it.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// State selects a temporal or status subset when listing bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState normalizes and validates a state query parameter. An
// empty string defaults to ALL, matching the HTTP API's default.
func ParseState(s string) (State, error) {
	v := State(strings.ToUpper(strings.TrimSpace(s)))
	if v == "" {
		return StateAll, nil
	}
	switch v {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return v, nil
	}
	return "", fmt.Errorf("unknown state: %s", s)
}

// StateMatches reports whether a booking falls into the given state
// filter when evaluated at the instant now. Temporal comparisons are
// strict: CURRENT means start < now < end, PAST means end < now and
// FUTURE means start > now. This is the single definition of the five
// filter predicates; the SQL store mirrors it clause for clause.
func StateMatches(b Booking, state State, now time.Time) bool {
	switch state {
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default: // ALL
		return true
	}
}

// Booking represents one reservation of an item for a time window.
// Start and End bound the window (End strictly after Start). ItemName
// and BookerName are display fields filled in by repository joins so
// responses do not need extra lookups.
//
// Fields:
//  ID         – primary key identifier.
//  ItemID     – item being reserved.
//  BookerID   – user requesting the reservation.
//  Start      – beginning of the reservation window (UTC).
//  End        – end of the reservation window (UTC).
//  Status     – current lifecycle state.
//  ItemName   – name of the item (display only).
//  BookerName – name of the booker (display only).
//  CreatedAt  – timestamp of creation.
type Booking struct {
	ID         uint64        // bookings.id
	ItemID     uint64        // bookings.item_id
	BookerID   uint64        // bookings.booker_id
	Start      time.Time     // bookings.start_at
	End        time.Time     // bookings.end_at
	Status     BookingStatus // bookings.status
	ItemName   string        // items.name (joined)
	BookerName string        // users.name (joined)
	CreatedAt  time.Time     // bookings.created_at
}

// BookingRef is the compact view of a booking attached to item
// responses as last/next booking for the owner.
type BookingRef struct {
	ID       uint64    `json:"id"`
	BookerID uint64    `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
