package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
)

// ItemStore methods for the fake shared with booking_test.go.

func (f *fakeItems) Create(_ context.Context, it *model.Item) error {
	id := uint64(len(f.rows) + 100)
	it.ID = id
	f.rows[id] = *it
	fakeItemOwners[id] = it.OwnerID
	return nil
}

func (f *fakeItems) Update(_ context.Context, it model.Item) error {
	f.rows[it.ID] = it
	return nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID uint64) ([]model.Item, error) {
	out := []model.Item{}
	for _, it := range f.rows {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItems) Search(_ context.Context, text string) ([]model.Item, error) {
	needle := strings.ToLower(text)
	out := []model.Item{}
	for _, it := range f.rows {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItems) ListByRequest(_ context.Context, requestID uint64) ([]model.Item, error) {
	out := []model.Item{}
	for _, it := range f.rows {
		if it.RequestID != nil && *it.RequestID == requestID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeComments struct {
	nextID uint64
	rows   []model.Comment
}

func (f *fakeComments) Create(_ context.Context, c *model.Comment) error {
	f.nextID++
	c.ID = f.nextID
	c.AuthorName = "author"
	c.CreatedAt = testNow
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeComments) ListByItem(_ context.Context, itemID uint64) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range f.rows {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeRequests struct {
	nextID uint64
	rows   map[uint64]model.ItemRequest
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{rows: map[uint64]model.ItemRequest{}}
}

func (f *fakeRequests) Create(_ context.Context, req *model.ItemRequest) error {
	f.nextID++
	req.ID = f.nextID
	req.CreatedAt = testNow
	f.rows[req.ID] = *req
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id uint64) (model.ItemRequest, error) {
	req, ok := f.rows[id]
	if !ok {
		return model.ItemRequest{}, sql.ErrNoRows
	}
	return req, nil
}

func (f *fakeRequests) ListByRequester(_ context.Context, requesterID uint64) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	for _, r := range f.rows {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRequests) ListAll(_ context.Context, limit, offset int) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []model.ItemRequest{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func newItemService(t *testing.T) (*ItemService, *fakeBookings, *fakeComments, *fakeRequests) {
	t.Helper()
	items := newFakeItems(
		model.Item{ID: itemID, OwnerID: ownerID, Name: "drill", Description: "cordless drill", Available: true},
		model.Item{ID: 11, OwnerID: ownerID, Name: "broken ladder", Description: "do not use", Available: false},
	)
	users := newFakeUsers(
		model.User{ID: ownerID, Name: "olga"},
		model.User{ID: bookerID, Name: "boris"},
	)
	bookings := newFakeBookings()
	comments := &fakeComments{}
	requests := newFakeRequests()
	svc := NewItemService(items, users, bookings, comments, requests)
	svc.now = func() time.Time { return testNow }
	return svc, bookings, comments, requests
}

func TestItemCreate(t *testing.T) {
	svc, _, _, _ := newItemService(t)
	ctx := context.Background()
	avail := true

	it, err := svc.Create(ctx, ownerID, CreateItemInput{Name: "saw", Description: "hand saw", Available: &avail})
	require.NoError(t, err)
	assert.NotZero(t, it.ID)
	assert.True(t, it.Available)

	_, err = svc.Create(ctx, ownerID, CreateItemInput{Description: "nameless", Available: &avail})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, ownerID, CreateItemInput{Name: "saw", Available: &avail})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, ownerID, CreateItemInput{Name: "saw", Description: "no availability"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, 999, CreateItemInput{Name: "saw", Description: "x", Available: &avail})
	assert.True(t, domain.IsNotFound(err))

	// items may answer an existing request but not a phantom one
	missing := uint64(12345)
	_, err = svc.Create(ctx, ownerID, CreateItemInput{Name: "saw", Description: "x", Available: &avail, RequestID: &missing})
	assert.True(t, domain.IsNotFound(err))
}

func TestItemUpdatePartial(t *testing.T) {
	svc, _, _, _ := newItemService(t)
	ctx := context.Background()

	newName := "power drill"
	it, err := svc.Update(ctx, ownerID, itemID, UpdateItemInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "power drill", it.Name)
	assert.Equal(t, "cordless drill", it.Description, "unset fields keep their value")
	assert.True(t, it.Available)

	off := false
	it, err = svc.Update(ctx, ownerID, itemID, UpdateItemInput{Available: &off})
	require.NoError(t, err)
	assert.False(t, it.Available)

	_, err = svc.Update(ctx, bookerID, itemID, UpdateItemInput{Name: &newName})
	assert.True(t, domain.IsNotFound(err), "non-owner cannot edit")

	blank := "  "
	_, err = svc.Update(ctx, ownerID, itemID, UpdateItemInput{Name: &blank})
	assert.True(t, domain.IsValidation(err))
}

func TestItemSearch(t *testing.T) {
	svc, _, _, _ := newItemService(t)
	ctx := context.Background()

	got, err := svc.Search(ctx, "DRILL")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, itemID, got[0].ID)

	got, err = svc.Search(ctx, "ladder")
	require.NoError(t, err)
	assert.Empty(t, got, "unavailable items never match")

	got, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got, "blank query returns nothing")
}

func TestAddCommentGating(t *testing.T) {
	svc, bookings, _, _ := newItemService(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, bookerID, itemID, "nice drill")
	assert.True(t, domain.IsValidation(err), "no booking yet")

	// a finished approved booking unlocks commenting
	done := model.Booking{
		ItemID: itemID, BookerID: bookerID,
		Start: testNow.Add(-3 * time.Hour), End: testNow.Add(-time.Hour),
		Status: model.StatusApproved,
	}
	require.NoError(t, bookings.Create(ctx, &done))

	cm, err := svc.AddComment(ctx, bookerID, itemID, "nice drill")
	require.NoError(t, err)
	assert.Equal(t, "nice drill", cm.Text)

	_, err = svc.AddComment(ctx, bookerID, itemID, "  ")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.AddComment(ctx, bookerID, 999, "hello")
	assert.True(t, domain.IsNotFound(err))
}

func TestAddCommentRequiresFinishedApproved(t *testing.T) {
	svc, bookings, _, _ := newItemService(t)
	ctx := context.Background()

	// ongoing approved booking: still locked
	ongoing := model.Booking{
		ItemID: itemID, BookerID: bookerID,
		Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour),
		Status: model.StatusApproved,
	}
	require.NoError(t, bookings.Create(ctx, &ongoing))
	_, err := svc.AddComment(ctx, bookerID, itemID, "too early")
	assert.True(t, domain.IsValidation(err))

	// finished but rejected booking: locked too
	rejected := model.Booking{
		ItemID: itemID, BookerID: bookerID,
		Start: testNow.Add(-5 * time.Hour), End: testNow.Add(-4 * time.Hour),
		Status: model.StatusRejected,
	}
	require.NoError(t, bookings.Create(ctx, &rejected))
	_, err = svc.AddComment(ctx, bookerID, itemID, "never borrowed")
	assert.True(t, domain.IsValidation(err))
}

func TestItemDetailLastNext(t *testing.T) {
	svc, bookings, _, _ := newItemService(t)
	ctx := context.Background()

	past := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(-4 * time.Hour), End: testNow.Add(-2 * time.Hour), Status: model.StatusApproved}
	current := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour), Status: model.StatusApproved}
	nearFuture := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(2 * time.Hour), End: testNow.Add(3 * time.Hour), Status: model.StatusWaiting}
	farFuture := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(5 * time.Hour), End: testNow.Add(6 * time.Hour), Status: model.StatusWaiting}
	rejectedNext := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(90 * time.Minute), End: testNow.Add(100 * time.Minute), Status: model.StatusRejected}
	for _, b := range []*model.Booking{&past, &current, &nearFuture, &farFuture, &rejectedNext} {
		require.NoError(t, bookings.Create(ctx, b))
	}

	d, err := svc.GetByID(ctx, ownerID, itemID)
	require.NoError(t, err)
	require.NotNil(t, d.LastBooking)
	require.NotNil(t, d.NextBooking)
	assert.Equal(t, current.ID, d.LastBooking.ID, "latest started booking wins")
	assert.Equal(t, nearFuture.ID, d.NextBooking.ID, "rejected bookings are skipped")

	// non-owner sees comments but no booking refs
	d, err = svc.GetByID(ctx, bookerID, itemID)
	require.NoError(t, err)
	assert.Nil(t, d.LastBooking)
	assert.Nil(t, d.NextBooking)
}

func TestListByOwnerAttachesDetails(t *testing.T) {
	svc, bookings, comments, _ := newItemService(t)
	ctx := context.Background()

	b := model.Booking{ItemID: itemID, BookerID: bookerID, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Status: model.StatusWaiting}
	require.NoError(t, bookings.Create(ctx, &b))
	c := model.Comment{ItemID: itemID, AuthorID: bookerID, Text: "solid"}
	require.NoError(t, comments.Create(ctx, &c))

	ds, err := svc.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, itemID, ds[0].Item.ID)
	require.NotNil(t, ds[0].NextBooking)
	assert.Equal(t, b.ID, ds[0].NextBooking.ID)
	require.Len(t, ds[0].Comments, 1)
}
