package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/service"
)

// RequestHandler exposes item requests over HTTP.
type RequestHandler struct {
	Requests *service.RequestService
}

func NewRequestHandler(r *service.RequestService) *RequestHandler {
	return &RequestHandler{Requests: r}
}

type createRequestReq struct {
	Description string `json:"description"`
}

type requestResp struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []itemResp `json:"items,omitempty"`
}

func toRequestResp(req model.ItemRequest) requestResp {
	return requestResp{ID: req.ID, Description: req.Description, Created: req.CreatedAt}
}

func toRequestDetailResp(d service.RequestDetail) requestResp {
	resp := toRequestResp(d.ItemRequest)
	resp.Items = make([]itemResp, 0, len(d.Items))
	for _, it := range d.Items {
		resp.Items = append(resp.Items, toItemResp(it))
	}
	return resp
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	r, err := h.Requests.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toRequestResp(r))
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	ds, err := h.Requests.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]requestResp, 0, len(ds))
	for _, d := range ds {
		out = append(out, toRequestDetailResp(d))
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListAll(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	from, size := parsePage(c)
	ds, err := h.Requests.ListAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]requestResp, 0, len(ds))
	for _, d := range ds {
		out = append(out, toRequestDetailResp(d))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID handles GET /requests/:requestId.
func (h *RequestHandler) GetByID(c echo.Context) error {
	uid, ok := requireUserID(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "requestId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	d, err := h.Requests.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestDetailResp(d))
}
