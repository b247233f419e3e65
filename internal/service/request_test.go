package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
)

func newRequestService(t *testing.T) (*RequestService, *fakeItems, *fakeRequests) {
	t.Helper()
	items := newFakeItems()
	users := newFakeUsers(
		model.User{ID: ownerID, Name: "olga"},
		model.User{ID: bookerID, Name: "boris"},
	)
	requests := newFakeRequests()
	return NewRequestService(requests, items, users), items, requests
}

func TestRequestCreate(t *testing.T) {
	svc, _, _ := newRequestService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, bookerID, "need a drill")
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, bookerID, req.RequesterID)

	_, err = svc.Create(ctx, bookerID, "   ")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, 999, "need a drill")
	assert.True(t, domain.IsNotFound(err))
}

func TestRequestListOwnWithItems(t *testing.T) {
	svc, items, _ := newRequestService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, bookerID, "need a drill")
	require.NoError(t, err)

	offered := model.Item{OwnerID: ownerID, Name: "drill", Description: "answers the wish", Available: true, RequestID: &req.ID}
	require.NoError(t, items.Create(ctx, &offered))

	ds, err := svc.ListOwn(ctx, bookerID)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Len(t, ds[0].Items, 1)
	assert.Equal(t, offered.ID, ds[0].Items[0].ID)

	// the other user has no requests
	ds, err = svc.ListOwn(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestRequestListAll(t *testing.T) {
	svc, _, requests := newRequestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := model.ItemRequest{RequesterID: bookerID, Description: "wish"}
		require.NoError(t, requests.Create(ctx, &req))
	}

	ds, err := svc.ListAll(ctx, ownerID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	ds, err = svc.ListAll(ctx, ownerID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, ds, 1)

	_, err = svc.ListAll(ctx, ownerID, -1, 2)
	assert.True(t, domain.IsValidation(err))
	_, err = svc.ListAll(ctx, ownerID, 0, 0)
	assert.True(t, domain.IsValidation(err))
	_, err = svc.ListAll(ctx, 999, 0, 2)
	assert.True(t, domain.IsNotFound(err))
}

func TestRequestGetByID(t *testing.T) {
	svc, _, _ := newRequestService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, bookerID, "need a drill")
	require.NoError(t, err)

	d, err := svc.GetByID(ctx, ownerID, req.ID)
	require.NoError(t, err, "any known user may view a request")
	assert.Equal(t, req.ID, d.ID)
	assert.NotNil(t, d.Items)

	_, err = svc.GetByID(ctx, ownerID, 999)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.GetByID(ctx, 999, req.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestRequestCreatedAtSet(t *testing.T) {
	svc, _, _ := newRequestService(t)
	req, err := svc.Create(context.Background(), bookerID, "wish")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), req.CreatedAt)
}
