package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/item-sharing-service/internal/model"
)

var bookingCols = []string{"id", "item_id", "booker_id", "start_at", "end_at", "status", "name", "name", "created_at"}

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestBookingCreate(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(uint64(10), uint64(2), start, end, "WAITING").
		WillReturnResult(sqlmock.NewResult(7, 1))

	b := model.Booking{ItemID: 10, BookerID: 2, Start: start, End: end, Status: model.StatusWaiting}
	require.NoError(t, repo.Create(context.Background(), &b))
	assert.Equal(t, uint64(7), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatusIf(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs("APPROVED", uint64(7), "WAITING").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatusIf(context.Background(), 7, model.StatusWaiting, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	// status already moved: zero rows affected, no error
	mock.ExpectExec("UPDATE bookings SET status=\\? WHERE id=\\? AND status=\\?").
		WithArgs("APPROVED", uint64(7), "WAITING").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.UpdateStatusIf(context.Background(), 7, model.StatusWaiting, model.StatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetByID(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(bookingCols).
		AddRow(7, 10, 2, start, start.Add(time.Hour), "WAITING", "drill", "boris", start)
	mock.ExpectQuery("SELECT b\\.id, b\\.item_id, b\\.booker_id").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "drill", b.ItemName)
	assert.Equal(t, "boris", b.BookerName)
	assert.Equal(t, model.StatusWaiting, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBookerStateClauses(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		state   model.State
		pattern string
		args    []driver.Value
	}{
		{model.StateAll, "WHERE b\\.booker_id = \\? ORDER BY b\\.start_at DESC", []driver.Value{uint64(2), 20, 0}},
		{model.StateCurrent, "b\\.start_at < \\? AND b\\.end_at > \\?", []driver.Value{uint64(2), now, now, 20, 0}},
		{model.StatePast, "b\\.end_at < \\?", []driver.Value{uint64(2), now, 20, 0}},
		{model.StateFuture, "b\\.start_at > \\?", []driver.Value{uint64(2), now, 20, 0}},
		{model.StateWaiting, "b\\.status = \\?", []driver.Value{uint64(2), "WAITING", 20, 0}},
		{model.StateRejected, "b\\.status = \\?", []driver.Value{uint64(2), "REJECTED", 20, 0}},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery(tc.pattern).
				WithArgs(tc.args...).
				WillReturnRows(sqlmock.NewRows(bookingCols))

			got, err := repo.ListByBooker(context.Background(), 2, tc.state, now, 20, 0)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListByOwnerJoinsOwnership(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("WHERE i\\.owner_id = \\? ORDER BY b\\.start_at DESC LIMIT \\? OFFSET \\?").
		WithArgs(uint64(1), 20, 0).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	got, err := repo.ListByOwner(context.Background(), 1, model.StateAll, now, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
