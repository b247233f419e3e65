package model

import "time"

// Item represents a thing a user has listed for loan, as stored in
// the `items` table. Available is an owner-managed listing flag: a
// booking may only be created while it is true, and booking state
// never toggles it.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user who listed the item.
//  Name        – short display name.
//  Description – free-form description.
//  Available   – whether the item can currently be booked.
//  RequestID   – item request this listing answers (nil when unsolicited).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Item struct {
	ID          uint64    // items.id
	OwnerID     uint64    // items.owner_id
	Name        string    // items.name
	Description string    // items.description
	Available   bool      // items.available
	RequestID   *uint64   // items.request_id (nullable)
	CreatedAt   time.Time // items.created_at
	UpdatedAt   time.Time // items.updated_at
}
