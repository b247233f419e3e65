package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/item-sharing-service/internal/model"
)

// BookingRepo provides access to the 'bookings' table. All reads join
// items and users so results carry the display names the API returns.
// Listing queries are always ordered by start_at descending regardless
// of the state filter, matching the API contract.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingSelect = `SELECT b.id, b.item_id, b.booker_id, b.start_at, b.end_at, b.status,
       i.name, u.name, b.created_at
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

// Create inserts a booking and populates the generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (item_id, booker_id, start_at, end_at, status) VALUES (?,?,?,?,?)",
		b.ItemID, b.BookerID, b.Start, b.End, string(b.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches one booking with its item and booker names.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx, bookingSelect+" WHERE b.id=? LIMIT 1", id).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
		&b.ItemName, &b.BookerName, &b.CreatedAt)
	return b, err
}

// UpdateStatusIf moves a booking from one status to another only when
// it is still in the expected status. Returns false when no row was
// updated, which means the booking changed under the caller.
func (r *BookingRepo) UpdateStatusIf(ctx context.Context, id uint64, from, to model.BookingStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// stateClause translates a state filter into an explicit SQL
// predicate over the booking columns, one case per filter. now is the
// evaluation instant for the temporal filters; comparisons are strict
// (CURRENT means start < now < end).
func stateClause(state model.State, now time.Time) (string, []any) {
	switch state {
	case model.StateCurrent:
		return " AND b.start_at < ? AND b.end_at > ?", []any{now, now}
	case model.StatePast:
		return " AND b.end_at < ?", []any{now}
	case model.StateFuture:
		return " AND b.start_at > ?", []any{now}
	case model.StateWaiting:
		return " AND b.status = ?", []any{string(model.StatusWaiting)}
	case model.StateRejected:
		return " AND b.status = ?", []any{string(model.StatusRejected)}
	default: // ALL
		return "", nil
	}
}

// ListByBooker returns the bookings a user has requested, filtered by
// state and paginated with limit/offset.
func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID uint64, state model.State, now time.Time, limit, offset int) ([]model.Booking, error) {
	clause, extra := stateClause(state, now)
	args := append([]any{bookerID}, extra...)
	args = append(args, limit, offset)
	return r.queryBookings(ctx,
		bookingSelect+" WHERE b.booker_id = ?"+clause+" ORDER BY b.start_at DESC LIMIT ? OFFSET ?",
		args...)
}

// ListByOwner returns the bookings made against a user's items,
// filtered by state and paginated with limit/offset.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64, state model.State, now time.Time, limit, offset int) ([]model.Booking, error) {
	clause, extra := stateClause(state, now)
	args := append([]any{ownerID}, extra...)
	args = append(args, limit, offset)
	return r.queryBookings(ctx,
		bookingSelect+" WHERE i.owner_id = ?"+clause+" ORDER BY b.start_at DESC LIMIT ? OFFSET ?",
		args...)
}

// ListByItem returns every booking of one item ordered by start
// ascending. Used for overlap checks and last/next enrichment.
func (r *BookingRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Booking, error) {
	return r.queryBookings(ctx,
		bookingSelect+" WHERE b.item_id = ? ORDER BY b.start_at", itemID)
}

// ListByBookerAndItem returns the bookings one user made for one
// item. Used to gate comments on finished loans.
func (r *BookingRepo) ListByBookerAndItem(ctx context.Context, bookerID, itemID uint64) ([]model.Booking, error) {
	return r.queryBookings(ctx,
		bookingSelect+" WHERE b.booker_id = ? AND b.item_id = ? ORDER BY b.start_at", bookerID, itemID)
}

func (r *BookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status,
			&b.ItemName, &b.BookerName, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
