package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// FavoriteHandler handles favorite CRUD. All routes are behind the guard and
// owner-scoped; there is no admin override.
type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type favoriteRequest struct {
	PropertyID int64 `json:"propertyId" validate:"required,gt=0"`
}

// List returns the caller's favorites, each joined with its property and the
// caller's profile.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.FavoriteView
// @Failure      401  {object}  errorResponse
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	favorites, err := h.service.List(c.Request().Context(), identity, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}

// Get returns one of the caller's favorites by id.
//
// @Summary      Get a favorite by id
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Favorite id"
// @Success      200  {object}  ports.FavoriteView
// @Failure      404  {object}  errorResponse
// @Router       /favorites/{id} [get]
func (h *FavoriteHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	favorite, err := h.service.GetByID(c.Request().Context(), id, identity, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorite)
}

// Add bookmarks a property for the caller. The property must exist and the
// (user, property) pair must be new.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      favoriteRequest  true  "Property to bookmark"
// @Success      201  {object}  ports.FavoriteView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite, err := h.service.Add(c.Request().Context(), identity, req.PropertyID, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

// Update re-points a favorite at another property.
//
// @Summary      Update a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Favorite id"
// @Param        body  body      favoriteRequest  true  "New property"
// @Success      200  {object}  ports.FavoriteView
// @Failure      404  {object}  errorResponse
// @Router       /favorites/{id} [put]
func (h *FavoriteHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite, err := h.service.Update(c.Request().Context(), id, identity, req.PropertyID, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorite)
}

// Remove deletes one of the caller's favorites.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Favorite id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), id, identity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Favorite removed successfully"})
}
