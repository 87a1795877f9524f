package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classifieds/ads-api/internal/api/metrics"
	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// AdvertisementHandler handles HTTP requests for advertisement operations.
type AdvertisementHandler struct {
	service ports.AdvertisementService
}

func NewAdvertisementHandler(service ports.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{service: service}
}

// List handles GET /api/v1/advertisements.
//
// @Summary      List all advertisements
// @Tags         advertisements
// @Produce      json
// @Success      200  {array}   advertisementResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/v1/advertisements [get]
func (h *AdvertisementHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvertisementResponses(views))
}

// Search handles GET /api/v1/advertisement.
//
// @Summary      Search advertisements
// @Description  Text filters match case-insensitive substrings, price matches exactly. Filters combine with AND.
// @Tags         advertisements
// @Produce      json
// @Param        title        query     string  false  "Title substring"
// @Param        description  query     string  false  "Description substring"
// @Param        price        query     int     false  "Exact price"
// @Param        author       query     string  false  "Author substring"
// @Success      200          {array}   advertisementResponse
// @Failure      400          {object}  errorResponse
// @Router       /api/v1/advertisement [get]
func (h *AdvertisementHandler) Search(c echo.Context) error {
	var filter domain.AdvertisementFilter
	b := echo.QueryParamsBinder(c).
		String("title", &filter.Title).
		String("description", &filter.Description).
		String("author", &filter.Author)
	if c.QueryParam("price") != "" {
		var price int64
		b.Int64("price", &price)
		filter.Price = &price
	}
	if err := b.BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	views, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvertisementResponses(views))
}

// Get handles GET /api/v1/advertisement/:id.
//
// @Summary      Get an advertisement
// @Tags         advertisements
// @Produce      json
// @Param        id   path      int  true  "Advertisement ID"
// @Success      200  {object}  advertisementResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/advertisement/{id} [get]
func (h *AdvertisementHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvertisementResponse(*view))
}

// Create handles POST /api/v1/advertisement.
//
// @Summary      Create an advertisement
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createAdvertisementRequest  true  "Advertisement"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/advertisement [post]
func (h *AdvertisementHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), toCreateInput(req), p)
	if err != nil {
		return err
	}

	metrics.AdvertisementsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// Update handles PATCH /api/v1/advertisement/:id.
//
// @Summary      Update an advertisement
// @Description  Only the fields present in the body are changed. Allowed for the owner and admins.
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                         true  "Advertisement ID"
// @Param        body  body      updateAdvertisementRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/advertisement/{id} [patch]
func (h *AdvertisementHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), id, toAdvertisementPatch(req), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: updated})
}

// Delete handles DELETE /api/v1/advertisement/:id.
//
// @Summary      Delete an advertisement
// @Tags         advertisements
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      int  true  "Advertisement ID"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/advertisement/{id} [delete]
func (h *AdvertisementHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
