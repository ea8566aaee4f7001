package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

// PropertyHandler handles listing CRUD and search. Reads are public;
// mutations sit behind the auth guard.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type createPropertyRequest struct {
	Title        string  `json:"title"        validate:"required"`
	Description  string  `json:"description"  validate:"required"`
	RentalType   string  `json:"rentalType"   validate:"required"`
	Price        float64 `json:"price"        validate:"required,gt=0"`
	Location     string  `json:"location"     validate:"required"`
	PropertyType string  `json:"propertyType" validate:"required"`
}

type updatePropertyRequest struct {
	Title        *string  `json:"title"        validate:"omitempty,min=1"`
	Description  *string  `json:"description"  validate:"omitempty,min=1"`
	RentalType   *string  `json:"rentalType"   validate:"omitempty"`
	Price        *float64 `json:"price"        validate:"omitempty,gt=0"`
	Location     *string  `json:"location"     validate:"omitempty,min=1"`
	PropertyType *string  `json:"propertyType" validate:"omitempty"`
}

type searchPropertyRequest struct {
	Location     string   `json:"location"     query:"location"`
	MinPrice     *float64 `json:"minPrice"     query:"minPrice"     validate:"omitempty,gte=0"`
	MaxPrice     *float64 `json:"maxPrice"     query:"maxPrice"     validate:"omitempty,gte=0"`
	PropertyType string   `json:"propertyType" query:"propertyType"`
	RentalType   string   `json:"rentalType"   query:"rentalType"`
}

// List returns every listing, enriched with owners when the caller sent a
// token.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Success      200  {array}  ports.PropertyView
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.service.ListAll(c.Request().Context(), authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// Search filters listings by optional, AND-combined predicates.
//
// @Summary      Search properties
// @Tags         properties
// @Produce      json
// @Param        location      query     string  false  "Location substring (case-insensitive)"
// @Param        minPrice      query     number  false  "Minimum price (inclusive)"
// @Param        maxPrice      query     number  false  "Maximum price (inclusive)"
// @Param        propertyType  query     string  false  "Property type"
// @Param        rentalType    query     string  false  "Rental type"
// @Success      200  {array}   ports.PropertyView
// @Failure      400  {object}  errorResponse
// @Router       /properties/search [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	var req searchPropertyRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid search filters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	properties, err := h.service.Search(c.Request().Context(), ports.SearchPropertyInput{
		Location:     req.Location,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		PropertyType: req.PropertyType,
		RentalType:   req.RentalType,
	}, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// Get returns one listing by id.
//
// @Summary      Get a property by id
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  ports.PropertyView
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	property, err := h.service.GetByID(c.Request().Context(), id, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Create adds a listing owned by the authenticated caller.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing details"
// @Success      201  {object}  ports.PropertyView
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.service.Create(c.Request().Context(), ports.CreatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		RentalType:   req.RentalType,
		Price:        req.Price,
		Location:     req.Location,
		PropertyType: req.PropertyType,
	}, identity, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, property)
}

// Update applies a partial patch; owner-or-admin only.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Fields to change"
// @Success      200  {object}  ports.PropertyView
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.service.Update(c.Request().Context(), id, ports.UpdatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		RentalType:   req.RentalType,
		Price:        req.Price,
		Location:     req.Location,
		PropertyType: req.PropertyType,
	}, identity, authHeader(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Delete removes a listing; owner-or-admin only.
//
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, identity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}
