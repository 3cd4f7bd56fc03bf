package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "realty-api/internal/handler/dto/request"
	resdto "realty-api/internal/handler/dto/response"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyCommands commands.PropertyCommands
	propertyQueries  queries.PropertyQueries
}

func NewPropertyHandler(propertyCommands commands.PropertyCommands, propertyQueries queries.PropertyQueries) *PropertyHandler {
	return &PropertyHandler{
		propertyCommands: propertyCommands,
		propertyQueries:  propertyQueries,
	}
}

// @Summary List properties
// @Description Browse listings with filters and cursor pagination
// @Tags properties
// @Produce json
// @Param suburb query string false "Suburb filter"
// @Param state query string false "State filter"
// @Param type query string false "Property type filter"
// @Param min_price query int false "Minimum price in cents"
// @Param max_price query int false "Maximum price in cents"
// @Param min_bedrooms query int false "Minimum bedrooms"
// @Param limit query int false "Page size, default 20, max 100"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} resdto.PropertyPageResponse
// @Failure 400 {object} map[string]string
// @Router /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	filter := queries.PropertyFilter{
		Suburb:       c.Query("suburb"),
		State:        c.Query("state"),
		PropertyType: c.Query("type"),
		AfterCursor:  c.Query("cursor"),
	}
	if v, ok := parseInt64Query(c, "min_price"); ok {
		filter.MinPrice = &v
	}
	if v, ok := parseInt64Query(c, "max_price"); ok {
		filter.MaxPrice = &v
	}
	if v, ok := parseIntQuery(c, "min_bedrooms"); ok {
		filter.MinBedrooms = &v
	}
	if v, ok := parseIntQuery(c, "limit"); ok {
		filter.Limit = v
	}

	page, err := h.propertyQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing query",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyPage(page))
}

// @Summary List featured properties
// @Tags properties
// @Produce json
// @Param limit query int false "Page size, default 20, max 100"
// @Success 200 {array} resdto.PropertyListItem
// @Router /properties/featured [get]
func (h *PropertyHandler) ListFeatured(c *gin.Context) {
	limit := 0
	if v, ok := parseIntQuery(c, "limit"); ok {
		limit = v
	}

	items, err := h.propertyQueries.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyListItems(items))
}

// @Summary List own listings
// @Tags properties
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.PropertyListItem
// @Failure 401 {object} map[string]string
// @Router /properties/mine [get]
func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	items, err := h.propertyQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyListItems(items))
}

// @Summary Get listing detail
// @Description Owner contact and reports appear only for unlocked viewers, the owner, or admins
// @Tags properties
// @Produce json
// @Param slug path string true "Listing slug"
// @Success 200 {object} resdto.PropertyDetailResponse
// @Failure 404 {object} map[string]string
// @Router /properties/{slug} [get]
func (h *PropertyHandler) GetBySlug(c *gin.Context) {
	detail, err := h.propertyQueries.GetBySlug(c.Request.Context(), c.Param("slug"), viewerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyDetailView(detail))
}

// @Summary Get a listing QR code
// @Description PNG QR code linking to the listing's public page
// @Tags properties
// @Produce png
// @Param slug path string true "Listing slug"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/qrcode [get]
func (h *PropertyHandler) QRCode(c *gin.Context) {
	png, err := h.propertyQueries.QRCode(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// @Summary Create a listing
// @Tags properties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePropertyRequest true "New listing"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.propertyCommands.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing data",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update a listing
// @Tags properties
// @Security BearerAuth
// @Accept json
// @Param slug path string true "Listing slug"
// @Param request body reqdto.UpdatePropertyRequest true "Listing update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.propertyCommands.Update(c.Request.Context(), actor, c.Param("slug"), req); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a listing
// @Tags properties
// @Security BearerAuth
// @Param slug path string true "Listing slug"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.propertyCommands.Delete(c.Request.Context(), actor, c.Param("slug")); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Attach or replace a listing report
// @Tags properties
// @Security BearerAuth
// @Accept json
// @Param slug path string true "Listing slug"
// @Param request body reqdto.UpsertReportRequest true "Report document"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/report [put]
func (h *PropertyHandler) UpsertReport(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.UpsertReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.propertyCommands.UpsertReport(c.Request.Context(), actor, c.Param("slug"), req); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get own engagement statistics
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.StatisticsResponse
// @Failure 401 {object} map[string]string
// @Router /users/me/statistics [get]
func (h *PropertyHandler) Statistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	stats, err := h.propertyQueries.UserStatistics(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserStatisticsView(stats))
}

func (h *PropertyHandler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Property not found",
		})
	case errors.Is(err, commands.ErrNotPropertyOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only the listing owner may do this",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt64Query(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
