package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

type createBookingReq struct {
	ItemID uint64    `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type bookingItemPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
type bookingUserPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
type bookingResp struct {
	ID     uint64          `json:"id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Status string          `json:"status"`
	Item   bookingItemPart `json:"item"`
	Booker bookingUserPart `json:"booker"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   bookingItemPart{ID: b.ItemID, Name: b.ItemName},
		Booker: bookingUserPart{ID: b.BookerID, Name: b.BookerName},
	}
}

func toBookingResps(bs []model.Booking) []bookingResp {
	out := make([]bookingResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResp(b))
	}
	return out
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ItemID == 0 || req.Start.IsZero() || req.End.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "itemId/start/end required"})
	}
	b, err := h.Bookings.Create(c.Request().Context(), uid, service.CreateBookingInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// SetApproval handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) SetApproval(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved query parameter required"})
	}
	b, err := h.Bookings.SetApproval(c.Request().Context(), uid, id, approved)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// GetByID handles GET /bookings/:bookingId.
func (h *BookingHandler) GetByID(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from, size := parsePage(c)
	bs, err := h.Bookings.ListForBooker(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bs))
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from, size := parsePage(c)
	bs, err := h.Bookings.ListForOwner(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResps(bs))
}
