// Package queue defines message payloads exchanged over the message
// broker along with the publisher and consumer for booking events.
package queue

// BookingStatusEvent is published whenever a booking is created or an
// owner decides on it. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingStatusEvent struct {
	BookingID uint64 `json:"booking_id"`
	ItemID    uint64 `json:"item_id"`
	ItemName  string `json:"item_name"`
	BookerID  uint64 `json:"booker_id"`
	OwnerID   uint64 `json:"owner_id"`
	Status    string `json:"status"`
	StartsAt  string `json:"starts_at"`
	EndsAt    string `json:"ends_at"`
	ChangedAt string `json:"changed_at"`
}
