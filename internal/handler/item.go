package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/service"
)

// ItemHandler exposes the item catalog over HTTP.
type ItemHandler struct {
	Items *service.ItemService
}

func NewItemHandler(i *service.ItemService) *ItemHandler {
	return &ItemHandler{Items: i}
}

type createItemReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *uint64 `json:"requestId"`
}

type updateItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type commentReq struct {
	Text string `json:"text"`
}

type commentResp struct {
	ID         uint64    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemResp struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *uint64           `json:"requestId,omitempty"`
	LastBooking *model.BookingRef `json:"lastBooking,omitempty"`
	NextBooking *model.BookingRef `json:"nextBooking,omitempty"`
	Comments    []commentResp     `json:"comments,omitempty"`
}

func toCommentResp(c model.Comment) commentResp {
	return commentResp{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt}
}

func toItemResp(it model.Item) itemResp {
	return itemResp{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func toItemDetailResp(d service.ItemDetail) itemResp {
	resp := toItemResp(d.Item)
	resp.LastBooking = d.LastBooking
	resp.NextBooking = d.NextBooking
	resp.Comments = make([]commentResp, 0, len(d.Comments))
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, toCommentResp(c))
	}
	return resp
}

// Create handles POST /items.
func (h *ItemHandler) Create(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	it, err := h.Items.Create(c.Request().Context(), uid, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResp(it))
}

// Update handles PATCH /items/:itemId.
func (h *ItemHandler) Update(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	it, err := h.Items.Update(c.Request().Context(), uid, id, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResp(it))
}

// GetByID handles GET /items/:itemId.
func (h *ItemHandler) GetByID(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	d, err := h.Items.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toItemDetailResp(d))
}

// ListOwn handles GET /items, returning the caller's items.
func (h *ItemHandler) ListOwn(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	ds, err := h.Items.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]itemResp, 0, len(ds))
	for _, d := range ds {
		out = append(out, toItemDetailResp(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Search handles GET /items/search?text=.
func (h *ItemHandler) Search(c echo.Context) error {
	items, err := h.Items.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]itemResp, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResp(it))
	}
	return c.JSON(http.StatusOK, out)
}

// AddComment handles POST /items/:itemId/comment.
func (h *ItemHandler) AddComment(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cm, err := h.Items.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toCommentResp(cm))
}
