// Package service implements the domain logic between handlers and
// repositories. Services depend on narrow store interfaces so they
// can be exercised against in-memory fakes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/queue"
)

// BookingStore is the persistence surface the booking engine needs.
// Implemented by repository.BookingRepo and by in-memory fakes in
// tests. List methods return results ordered by start descending and
// already paginated.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	UpdateStatusIf(ctx context.Context, id uint64, from, to model.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID uint64, state model.State, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID uint64, state model.State, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.Booking, error)
	ListByBookerAndItem(ctx context.Context, bookerID, itemID uint64) ([]model.Booking, error)
}

// ItemReader exposes the item lookups services need.
type ItemReader interface {
	GetByID(ctx context.Context, id uint64) (model.Item, error)
}

// UserReader exposes the user lookups services need.
type UserReader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
}

// EventPublisher sends booking status events to the broker.
type EventPublisher interface {
	PublishBookingStatus(ctx context.Context, ev queue.BookingStatusEvent) error
}

// BookingService is the booking lifecycle engine: it validates
// creation, applies approval and rejection transitions, and answers
// temporal queries about a user's bookings.
type BookingService struct {
	bookings BookingStore
	items    ItemReader
	users    UserReader
	events   EventPublisher   // nil disables event publishing
	now      func() time.Time // injected clock, UTC
}

// NewBookingService wires the engine. events may be nil.
func NewBookingService(bookings BookingStore, items ItemReader, users UserReader, events EventPublisher) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBookingInput carries the caller-supplied fields of a new
// booking request.
type CreateBookingInput struct {
	ItemID uint64
	Start  time.Time
	End    time.Time
}

// Create validates and persists a new booking in WAITING status.
// Checks run in a fixed order: item existence, self-booking, booker
// existence, item availability, then the time window. The owner of an
// item cannot book it, and that case is reported as not-found rather
// than forbidden, matching the API's contract of hiding resources
// from unrelated callers.
func (s *BookingService) Create(ctx context.Context, bookerID uint64, in CreateBookingInput) (model.Booking, error) {
	item, err := s.items.GetByID(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("item not found")
		}
		return model.Booking{}, err
	}
	if bookerID == item.OwnerID {
		return model.Booking{}, domain.NewNotFound("owner cannot book own item")
	}
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("user not found")
		}
		return model.Booking{}, err
	}
	if !item.Available {
		return model.Booking{}, domain.NewValidation("item unavailable")
	}
	start := in.Start.UTC()
	end := in.End.UTC()
	if start.After(end) {
		return model.Booking{}, domain.NewValidation("start is after end")
	}
	if start.Equal(end) {
		return model.Booking{}, domain.NewValidation("start equals end")
	}
	if start.Before(s.now()) {
		return model.Booking{}, domain.NewValidation("start is in the past")
	}

	b := model.Booking{
		ItemID:     item.ID,
		BookerID:   booker.ID,
		Start:      start,
		End:        end,
		Status:     model.StatusWaiting,
		ItemName:   item.Name,
		BookerName: booker.Name,
	}
	if err := s.bookings.Create(ctx, &b); err != nil {
		return model.Booking{}, err
	}
	s.publish(ctx, b, item.OwnerID)
	return b, nil
}

// SetApproval applies the owner's decision to a waiting booking.
// approve=true moves it to APPROVED, approve=false to REJECTED.
// Re-approving an APPROVED booking fails; re-rejecting a REJECTED one
// is a no-op. Approval is refused when the window overlaps a booking
// already approved for the same item. The status write is a guarded
// update, so a concurrent decision on the same booking loses and
// surfaces as an illegal transition.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID uint64, approve bool) (model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("booking not found")
		}
		return model.Booking{}, err
	}
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("user not found")
		}
		return model.Booking{}, err
	}
	if b.Status == model.StatusApproved && approve {
		return model.Booking{}, domain.NewValidation("can't change status")
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("item not found")
		}
		return model.Booking{}, err
	}
	if item.OwnerID != owner.ID {
		return model.Booking{}, domain.NewNotFound("only the item's owner may update a booking")
	}

	if !approve && b.Status == model.StatusRejected {
		return b, nil // already rejected, nothing to do
	}

	target := model.StatusRejected
	if approve {
		target = model.StatusApproved
		others, err := s.bookings.ListByItem(ctx, b.ItemID)
		if err != nil {
			return model.Booking{}, err
		}
		for _, other := range others {
			if other.ID == b.ID || other.Status != model.StatusApproved {
				continue
			}
			if overlaps(b, other) {
				return model.Booking{}, domain.NewValidation("booking overlaps an approved booking")
			}
		}
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, b.Status, target)
	if err != nil {
		return model.Booking{}, err
	}
	if !ok {
		return model.Booking{}, domain.NewValidation("can't change status")
	}
	b.Status = target
	s.publish(ctx, b, item.OwnerID)
	return b, nil
}

// GetByID returns a booking to its booker or to the item's owner.
// Any other caller gets not-found, never forbidden.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID uint64) (model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("booking not found")
		}
		return model.Booking{}, err
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, domain.NewNotFound("item not found")
		}
		return model.Booking{}, err
	}
	if requesterID != b.BookerID && requesterID != item.OwnerID {
		return model.Booking{}, domain.NewNotFound("caller has no relation to this booking")
	}
	return b, nil
}

// ListForBooker returns the caller's bookings filtered by state,
// ordered by start descending, windowed by from/size.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID uint64, state model.State, from, size int) ([]model.Booking, error) {
	if err := s.checkPage(ctx, bookerID, from, size); err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, bookerID, state, s.now(), size, from)
}

// ListForOwner returns the bookings made against the caller's items,
// filtered by state, ordered by start descending, windowed by
// from/size.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uint64, state model.State, from, size int) ([]model.Booking, error) {
	if err := s.checkPage(ctx, ownerID, from, size); err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, ownerID, state, s.now(), size, from)
}

func (s *BookingService) checkPage(ctx context.Context, userID uint64, from, size int) error {
	if from < 0 {
		return domain.NewValidation("from must be non-negative")
	}
	if size <= 0 {
		return domain.NewValidation("size must be positive")
	}
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("user not found")
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, b model.Booking, ownerID uint64) {
	if s.events == nil {
		return
	}
	ev := queue.BookingStatusEvent{
		BookingID: b.ID,
		ItemID:    b.ItemID,
		ItemName:  b.ItemName,
		BookerID:  b.BookerID,
		OwnerID:   ownerID,
		Status:    string(b.Status),
		StartsAt:  b.Start.Format(time.RFC3339),
		EndsAt:    b.End.Format(time.RFC3339),
		ChangedAt: s.now().Format(time.RFC3339),
	}
	if err := s.events.PublishBookingStatus(ctx, ev); err != nil {
		log.Printf("booking: publish status event failed: %v", err)
	}
}

// overlaps reports whether two booking windows intersect.
func overlaps(a, b model.Booking) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
