package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/item-sharing-service/internal/model"
)

// RequestRepo provides access to the 'requests' table (item wishes).
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

const requestColumns = "id,requester_id,description,created_at"

// Create inserts a request and populates the generated ID and
// creation time.
func (r *RequestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO requests (requester_id, description) VALUES (?,?)",
		req.RequesterID, req.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM requests WHERE id=?", req.ID).Scan(&req.CreatedAt)
}

// GetByID fetches a request by id.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.ItemRequest, error) {
	var req model.ItemRequest
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1",
		id).Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt)
	return req, err
}

// ListByRequester returns one user's requests, newest first.
func (r *RequestRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.ItemRequest, error) {
	return r.queryRequests(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE requester_id=? ORDER BY created_at DESC",
		requesterID)
}

// ListAll returns all requests, newest first, paginated.
func (r *RequestRepo) ListAll(ctx context.Context, limit, offset int) ([]model.ItemRequest, error) {
	return r.queryRequests(ctx,
		"SELECT "+requestColumns+" FROM requests ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
}

func (r *RequestRepo) queryRequests(ctx context.Context, query string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	requests := make([]model.ItemRequest, 0)
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
