package api

import (
	"errors"
	"net/http"

	reqdto "realty-api/internal/handler/dto/request"
	resdto "realty-api/internal/handler/dto/response"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands    commands.AdminCommands
	settingsCommands commands.SettingsCommands
	propertyCommands commands.PropertyCommands
	userQueries      queries.UserQueries
	settingsQueries  queries.SettingsQueries
}

func NewAdminHandler(
	adminCommands commands.AdminCommands,
	settingsCommands commands.SettingsCommands,
	propertyCommands commands.PropertyCommands,
	userQueries queries.UserQueries,
	settingsQueries queries.SettingsQueries,
) *AdminHandler {
	return &AdminHandler{
		adminCommands:    adminCommands,
		settingsCommands: settingsCommands,
		propertyCommands: propertyCommands,
		userQueries:      userQueries,
		settingsQueries:  settingsQueries,
	}
}

// @Summary List users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size, default 20, max 100"
// @Success 200 {array} resdto.ProfileResponse
// @Failure 403 {object} map[string]string
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit := 0
	if v, ok := parseIntQuery(c, "limit"); ok {
		limit = v
	}

	users, err := h.userQueries.ListUsers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserProfileViews(users))
}

// @Summary Suspend or reinstate a user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "User id"
// @Param request body reqdto.SetUserActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id}/active [put]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user id",
		})
		return
	}

	var req reqdto.SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.adminCommands.SetUserActive(c.Request.Context(), userID, *req.IsActive); err != nil {
		switch {
		case errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
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

// @Summary Get marketplace settings
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.SettingsResponse
// @Failure 403 {object} map[string]string
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsQueries.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSettingsView(settings))
}

// @Summary Update the unlock price
// @Description Applies to checkouts created after the change
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param request body reqdto.UpdateUnlockPriceRequest true "New unlock price"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /admin/settings/unlock-price [put]
func (h *AdminHandler) UpdateUnlockPrice(c *gin.Context) {
	var req reqdto.UpdateUnlockPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.settingsCommands.UpdateUnlockPrice(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Feature or unfeature a listing
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param slug path string true "Listing slug"
// @Param request body reqdto.SetFeaturedRequest true "Featured flag"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/properties/{slug}/featured [put]
func (h *AdminHandler) SetFeatured(c *gin.Context) {
	var req reqdto.SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.propertyCommands.SetFeatured(c.Request.Context(), c.Param("slug"), *req.IsFeatured); err != nil {
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
