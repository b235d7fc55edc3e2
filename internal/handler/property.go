package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing/internal/repository"
	"github.com/iliyamo/property-listing/internal/service"
)

// PropertyService is the service surface the handler depends on.  It is
// satisfied by *service.PropertyService; tests substitute a stub.
type PropertyService interface {
	CreateProperty(ctx context.Context, dto service.PropertyDTO) (service.PropertyDTO, error)
	AddImageToProperty(ctx context.Context, propertyID uint64, dto service.PropertyAddImageDTO) error
	ChangePropertyPrice(ctx context.Context, propertyID uint64, newPrice float64) error
	UpdateProperty(ctx context.Context, propertyID uint64, dto service.PropertyDTO) error
	GetPropertiesWithFilters(ctx context.Context, f service.PropertyFilterDTO) ([]service.PropertyDTO, error)
}

// PropertyHandler translates HTTP requests into service calls and service
// results (or sentinel errors) into HTTP responses.
type PropertyHandler struct {
	Service PropertyService
}

// NewPropertyHandler constructs a PropertyHandler and panics on a nil service.
func NewPropertyHandler(svc PropertyService) *PropertyHandler {
	if svc == nil {
		panic("nil service passed to NewPropertyHandler")
	}
	return &PropertyHandler{Service: svc}
}

// reqCtx bounds a database-backed call to 5 seconds.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// propertyID parses the :idProperty path parameter.
func propertyID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("idProperty"), 10, 64)
}

// serviceError maps the sentinel error taxonomy onto HTTP codes:
// not-found references become 404, name conflicts 409, anything else 500.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, repository.ErrOwnerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "owner not found"})
	case errors.Is(err, repository.ErrPropertyNameExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "property name already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// CreateProperty handles POST /api/Property/CreateProperty.  Returns 200 and
// the persisted projection, including the generated identifier.
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var dto service.PropertyDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := dto.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	created, err := h.Service.CreateProperty(ctx, dto)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, created)
}

// AddImageToProperty handles POST /api/Property/:idProperty/AddImageToProperty.
func (h *PropertyHandler) AddImageToProperty(c echo.Context) error {
	id, err := propertyID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var dto service.PropertyAddImageDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := dto.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Service.AddImageToProperty(ctx, id, dto); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePrice handles PUT /api/Property/:idProperty/ChangePrice.  The body
// is a bare JSON number, not an object.
func (h *PropertyHandler) ChangePrice(c echo.Context) error {
	id, err := propertyID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var newPrice float64
	if err := json.NewDecoder(c.Request().Body).Decode(&newPrice); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body must be a decimal price"})
	}
	if newPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Service.ChangePropertyPrice(ctx, id, newPrice); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProperty handles PUT /api/Property/:idProperty/UpdateProperty.
func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	id, err := propertyID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var dto service.PropertyDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := dto.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Service.UpdateProperty(ctx, id, dto); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProperties handles GET /api/Property/GetProperties with the optional
// name/address/codeInternal/year query filters.
func (h *PropertyHandler) GetProperties(c echo.Context) error {
	f := service.PropertyFilterDTO{
		Name:         c.QueryParam("name"),
		Address:      c.QueryParam("address"),
		CodeInternal: c.QueryParam("codeInternal"),
		Year:         c.QueryParam("year"),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Service.GetPropertiesWithFilters(ctx, f)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
