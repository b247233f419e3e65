package model

import "time"

// Comment is feedback left on an item by a user who borrowed it.
// AuthorName is filled by a repository join for display.
//
// Fields:
//  ID         – primary key identifier.
//  ItemID     – item the comment refers to.
//  AuthorID   – user who wrote the comment.
//  Text       – comment body.
//  AuthorName – name of the author (display only).
//  CreatedAt  – timestamp of creation.
type Comment struct {
	ID         uint64    // comments.id
	ItemID     uint64    // comments.item_id
	AuthorID   uint64    // comments.author_id
	Text       string    // comments.text
	AuthorName string    // users.name (joined)
	CreatedAt  time.Time // comments.created_at
}
