package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/service"
	"github.com/iliyamo/item-sharing-service/internal/utils"
)

// UserHandler exposes user account management over HTTP.
type UserHandler struct {
	Users      *service.UserService
	BcryptCost int
}

func NewUserHandler(u *service.UserService, bcryptCost int) *UserHandler {
	return &UserHandler{Users: u, BcryptCost: bcryptCost}
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // optional; without it the account cannot log in
}

type updateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type userResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var hash string
	if req.Password != "" {
		var err error
		hash, err = utils.HashPassword(req.Password, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
	}
	u, err := h.Users.Create(c.Request().Context(), service.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// Update handles PATCH /users/:userId.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	u, err := h.Users.Update(c.Request().Context(), id, service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// GetByID handles GET /users/:userId.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	us, err := h.Users.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]userResp, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, out)
}
