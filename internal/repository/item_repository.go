package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/item-sharing-service/internal/model"
)

// ItemRepo provides CRUD and search access to the 'items' table.
type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = "id,owner_id,name,description,available,request_id,created_at,updated_at"

func scanItem(row interface{ Scan(...any) error }) (model.Item, error) {
	var it model.Item
	var reqID sql.NullInt64
	err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available,
		&reqID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return model.Item{}, err
	}
	if reqID.Valid {
		v := uint64(reqID.Int64)
		it.RequestID = &v
	}
	return it, nil
}

// Create inserts an item and populates the generated ID.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	var reqID any
	if it.RequestID != nil {
		reqID = *it.RequestID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (owner_id, name, description, available, request_id) VALUES (?,?,?,?,?)",
		it.OwnerID, it.Name, it.Description, it.Available, reqID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	return scanItem(r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id=? LIMIT 1", id))
}

// Update rewrites the mutable fields of an item.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE items SET name=?, description=?, available=? WHERE id=?",
		it.Name, it.Description, it.Available, it.ID)
	return err
}

// ListByOwner returns all items listed by one user, ordered by id.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE owner_id=? ORDER BY id", ownerID)
}

// Search returns available items whose name or description contains
// the given text, case-insensitively. Blank text is handled by the
// service layer; this method assumes a non-empty needle.
func (r *ItemRepo) Search(ctx context.Context, text string) ([]model.Item, error) {
	needle := "%" + text + "%"
	return r.queryItems(ctx,
		"SELECT "+itemColumns+` FROM items
		 WHERE available = TRUE AND (LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))
		 ORDER BY id`, needle, needle)
}

// ListByRequest returns the items created in answer to a request.
func (r *ItemRepo) ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE request_id=? ORDER BY id", requestID)
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
