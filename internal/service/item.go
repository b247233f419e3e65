package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
)

// ItemStore is the persistence surface the item service needs.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id uint64) (model.Item, error)
	Update(ctx context.Context, it model.Item) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Item, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error)
}

// CommentStore persists and lists item comments.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error)
}

// RequestReader exposes the request lookup the item service needs to
// validate request_id references on creation.
type RequestReader interface {
	GetByID(ctx context.Context, id uint64) (model.ItemRequest, error)
}

// ItemDetail is an item enriched with its comments and, for the
// owner, the last and next bookings.
type ItemDetail struct {
	model.Item
	LastBooking *model.BookingRef
	NextBooking *model.BookingRef
	Comments    []model.Comment
}

// ItemService manages the item catalog: listing, editing, searching
// and commenting.
type ItemService struct {
	items    ItemStore
	users    UserReader
	bookings BookingStore
	comments CommentStore
	requests RequestReader
	now      func() time.Time
}

func NewItemService(items ItemStore, users UserReader, bookings BookingStore, comments CommentStore, requests RequestReader) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateItemInput carries the fields of a new listing. RequestID is
// optional and links the item to the request it answers.
type CreateItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *uint64
}

// Create validates and persists a new item owned by ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID uint64, in CreateItemInput) (model.Item, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return model.Item{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Item{}, domain.NewValidation("item name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Item{}, domain.NewValidation("item description is required")
	}
	if in.Available == nil {
		return model.Item{}, domain.NewValidation("item availability is required")
	}
	if in.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *in.RequestID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.Item{}, domain.NewNotFound("request not found")
			}
			return model.Item{}, err
		}
	}
	it := model.Item{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		RequestID:   in.RequestID,
	}
	if err := s.items.Create(ctx, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// UpdateItemInput carries a partial item update; nil fields are left
// unchanged.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// Update applies a partial edit to an item. Only the owner may edit;
// anyone else gets not-found.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID uint64, in UpdateItemInput) (model.Item, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, domain.NewNotFound("item not found")
		}
		return model.Item{}, err
	}
	if it.OwnerID != ownerID {
		return model.Item{}, domain.NewNotFound("only the owner may edit an item")
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Item{}, domain.NewValidation("item name cannot be blank")
		}
		it.Name = *in.Name
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return model.Item{}, domain.NewValidation("item description cannot be blank")
		}
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// GetByID returns one item with its comments. When the requester is
// the owner, the last and next bookings are attached as well.
func (s *ItemService) GetByID(ctx context.Context, requesterID, itemID uint64) (ItemDetail, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ItemDetail{}, domain.NewNotFound("item not found")
		}
		return ItemDetail{}, err
	}
	detail := ItemDetail{Item: it}
	detail.Comments, err = s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return ItemDetail{}, err
	}
	if requesterID == it.OwnerID {
		if err := s.attachBookings(ctx, &detail); err != nil {
			return ItemDetail{}, err
		}
	}
	return detail, nil
}

// ListByOwner returns all of one owner's items with comments and
// last/next bookings attached.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uint64) ([]ItemDetail, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	details := make([]ItemDetail, 0, len(items))
	for _, it := range items {
		d := ItemDetail{Item: it}
		d.Comments, err = s.comments.ListByItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if err := s.attachBookings(ctx, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// Search returns available items matching the text. A blank query
// yields an empty result rather than the whole catalog.
func (s *ItemService) Search(ctx context.Context, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text)
}

// AddComment stores a comment on an item. Only a user who actually
// borrowed the item, through an approved booking that has already
// ended, may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uint64, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, domain.NewValidation("comment text is required")
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, domain.NewNotFound("item not found")
		}
		return model.Comment{}, err
	}
	if err := s.requireUser(ctx, authorID); err != nil {
		return model.Comment{}, err
	}
	past, err := s.bookings.ListByBookerAndItem(ctx, authorID, itemID)
	if err != nil {
		return model.Comment{}, err
	}
	now := s.now()
	allowed := false
	for _, b := range past {
		if b.Status == model.StatusApproved && b.End.Before(now) {
			allowed = true
			break
		}
	}
	if !allowed {
		return model.Comment{}, domain.NewValidation("user has not finished a booking of this item")
	}
	c := model.Comment{ItemID: itemID, AuthorID: authorID, Text: text}
	if err := s.comments.Create(ctx, &c); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// attachBookings fills LastBooking and NextBooking on an item detail.
// Last is the most recently started non-rejected booking that has
// begun; next is the earliest one still in the future.
func (s *ItemService) attachBookings(ctx context.Context, d *ItemDetail) error {
	bookings, err := s.bookings.ListByItem(ctx, d.Item.ID)
	if err != nil {
		return err
	}
	now := s.now()
	for i := range bookings {
		b := bookings[i]
		if b.Status == model.StatusRejected || b.Status == model.StatusCanceled {
			continue
		}
		ref := &model.BookingRef{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
		if !b.Start.After(now) {
			// bookings are ordered by start ascending, so the last
			// one seen here is the latest started
			d.LastBooking = ref
		} else if d.NextBooking == nil {
			d.NextBooking = ref
		}
	}
	return nil
}

func (s *ItemService) requireUser(ctx context.Context, userID uint64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("user not found")
	}
	return nil
}
