package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rzdmap/rzdmap-api/internal/api/metrics"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

type MapLineHandler struct {
	service ports.MapLineService
}

func NewMapLineHandler(service ports.MapLineService) *MapLineHandler {
	return &MapLineHandler{service: service}
}

// Create draws a new line between two stations.
//
// @Summary      Create a map line
// @Tags         maplines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMapLineRequest  true  "Station coordinates"
// @Success      201   {object}  mapLineResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/maplines [post]
func (h *MapLineHandler) Create(c echo.Context) error {
	var req createMapLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	line, err := h.service.CreateMapLine(c.Request().Context(), toCreateMapLineInput(req, username))
	if err != nil {
		return err
	}

	metrics.MapLinesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMapLineResponse(line))
}

// Get returns a single map line.
//
// @Summary      Get a map line
// @Tags         maplines
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Map line ID"
// @Success      200  {object}  mapLineResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/maplines/{id} [get]
func (h *MapLineHandler) Get(c echo.Context) error {
	line, err := h.service.GetMapLine(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMapLineResponse(line))
}

// List returns map lines page by page, oldest first.
//
// @Summary      List map lines
// @Tags         maplines
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 20, max 100)"
// @Success      200    {object}  listMapLinesResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/maplines [get]
func (h *MapLineHandler) List(c echo.Context) error {
	var page, limit int
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "page and limit must be integers"})
	}

	res, err := h.service.ListMapLines(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListMapLinesResponse(res))
}

// Delete removes a map line.
//
// @Summary      Delete a map line
// @Tags         maplines
// @Security     BearerAuth
// @Param        id  path  string  true  "Map line ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/maplines/{id} [delete]
func (h *MapLineHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMapLine(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
