package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/property-management/property-api/internal/api/metrics"
	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create handles POST /properties. The caller becomes the owner.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        X-User-Id        header    int                    true   "Owner user id"
// @Param        Idempotency-Key  header    string                 false  "Replays return the property created the first time"
// @Param        body             body      createPropertyRequest  true   "Property details"
// @Success      201              {object}  propertyResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, created, err := h.service.CreateProperty(c.Request().Context(),
		toCreatePropertyInput(req, owner, c.Request().Header.Get(HeaderIdempotencyKey)))
	if err != nil {
		return err
	}

	if created {
		metrics.PropertiesCreatedTotal.WithLabelValues(string(p.Type)).Inc()
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

// List handles GET /properties.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        city  query     string  false  "Exact city name, case-insensitive"
// @Success      200   {array}   propertyResponse
// @Failure      500   {object}  map[string]string
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	props, err := h.service.ListProperties(c.Request().Context(), ports.PropertyFilter{
		City: c.QueryParam("city"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyListResponse(props))
}

// Get handles GET /properties/:id.
//
// @Summary      Get a property by id
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c, domain.ErrPropertyNotFound)
	if err != nil {
		return err
	}

	p, err := h.service.GetProperty(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// Update handles PATCH and PUT /properties/:id. Both are partial updates.
//
// @Summary      Update a property
// @Description  Absent fields are kept. rooms_details replaces the whole room set.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header    int                    true  "Caller user id, must be the owner"
// @Param        id         path      int                    true  "Property id"
// @Param        body       body      updatePropertyRequest  true  "Fields to change"
// @Success      200        {object}  propertyResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /properties/{id} [patch]
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrPropertyNotFound)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.UpdateProperty(c.Request().Context(), caller, id, toPropertyPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// Delete handles DELETE /properties/:id.
//
// @Summary      Delete a property and its rooms
// @Tags         properties
// @Param        X-User-Id  header  int  true  "Caller user id, must be the owner"
// @Param        id         path    int  true  "Property id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrPropertyNotFound)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProperty(c.Request().Context(), caller, id); err != nil {
		return err
	}

	metrics.PropertiesDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
