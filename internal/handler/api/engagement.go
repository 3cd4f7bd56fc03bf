package api

import (
	"errors"
	"net/http"

	reqdto "realty-api/internal/handler/dto/request"
	resdto "realty-api/internal/handler/dto/response"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EngagementHandler struct {
	engagementCommands commands.EngagementCommands
	engagementQueries  queries.EngagementQueries
}

func NewEngagementHandler(
	engagementCommands commands.EngagementCommands,
	engagementQueries queries.EngagementQueries,
) *EngagementHandler {
	return &EngagementHandler{
		engagementCommands: engagementCommands,
		engagementQueries:  engagementQueries,
	}
}

// @Summary List own bookmarks
// @Tags engagement
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.Bookmark
// @Failure 401 {object} map[string]string
// @Router /bookmarks [get]
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	views, err := h.engagementQueries.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookmarkViews(views))
}

// @Summary Bookmark a listing
// @Tags engagement
// @Security BearerAuth
// @Param slug path string true "Listing slug"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/bookmark [post]
func (h *EngagementHandler) AddBookmark(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.engagementCommands.AddBookmark(c.Request.Context(), userID, c.Param("slug")); err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
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

	c.Status(http.StatusNoContent)
}

// @Summary Remove a bookmark
// @Tags engagement
// @Security BearerAuth
// @Param slug path string true "Listing slug"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/bookmark [delete]
func (h *EngagementHandler) RemoveBookmark(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := h.engagementCommands.RemoveBookmark(c.Request.Context(), userID, c.Param("slug")); err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound), errors.Is(err, commands.ErrBookmarkNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Bookmark not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Request an inspection
// @Tags engagement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Listing slug"
// @Param request body reqdto.CreateInspectionRequest true "Inspection request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/inspections [post]
func (h *EngagementHandler) RequestInspection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.engagementCommands.RequestInspection(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid inspection request",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List own inspections
// @Tags engagement
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.Inspection
// @Failure 401 {object} map[string]string
// @Router /inspections/mine [get]
func (h *EngagementHandler) ListMyInspections(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	views, err := h.engagementQueries.ListInspectionsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromInspectionViews(views))
}

// @Summary List inspections for a listing
// @Description Restricted to the listing owner and admins
// @Tags engagement
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Listing slug"
// @Success 200 {array} resdto.Inspection
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{slug}/inspections [get]
func (h *EngagementHandler) ListPropertyInspections(c *gin.Context) {
	viewer := viewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	views, err := h.engagementQueries.ListInspectionsForProperty(c.Request.Context(), *viewer, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		case errors.Is(err, queries.ErrInspectionAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to view inspections for this listing",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromInspectionViews(views))
}

// @Summary Confirm or cancel an inspection
// @Description Owners and admins may confirm or cancel, the requester may cancel their own booking
// @Tags engagement
// @Security BearerAuth
// @Accept json
// @Param id path string true "Inspection id"
// @Param request body reqdto.UpdateInspectionStatusRequest true "Status change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inspections/{id} [patch]
func (h *EngagementHandler) UpdateInspectionStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	inspectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid inspection id",
		})
		return
	}

	var req reqdto.UpdateInspectionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.engagementCommands.UpdateInspectionStatus(c.Request.Context(), actor, inspectionID, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrInspectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Inspection not found",
			})
		case errors.Is(err, commands.ErrInspectionForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to manage this inspection",
			})
		case errors.Is(err, commands.ErrInspectionStateFrozen):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Inspection can no longer change state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
