package model

import "time"

// ItemRequest is a wish posted by a user looking for an item that is
// not listed yet. Other users may answer it by creating items that
// reference the request.
//
// Fields:
//  ID          – primary key identifier.
//  RequesterID – user who posted the request.
//  Description – what the requester is looking for.
//  CreatedAt   – timestamp of creation.
type ItemRequest struct {
	ID          uint64    // requests.id
	RequesterID uint64    // requests.requester_id
	Description string    // requests.description
	CreatedAt   time.Time // requests.created_at
}
