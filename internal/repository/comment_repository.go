package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/item-sharing-service/internal/model"
)

// CommentRepo provides access to the 'comments' table.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment, then queries the row back to populate the
// generated ID, creation time and author name.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (item_id, author_id, text) VALUES (?,?,?)",
		c.ItemID, c.AuthorID, c.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		`SELECT c.created_at, u.name FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id=?`,
		c.ID).Scan(&c.CreatedAt, &c.AuthorName)
}

// ListByItem returns the comments on one item, oldest first, with
// author names joined in.
func (r *CommentRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.item_id, c.author_id, c.text, u.name, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.item_id = ?
		 ORDER BY c.created_at`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.Text, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
