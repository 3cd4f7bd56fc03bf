package api

import (
	"realty-api/internal/domain/user"
	"realty-api/internal/handler/middleware"
	"realty-api/internal/usecase/commands"
	"realty-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// viewerFromContext returns nil for anonymous requests, which the query
// layer treats as a locked view.
func viewerFromContext(c *gin.Context) *queries.Viewer {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	role, _ := middleware.GetUserRole(c)
	return &queries.Viewer{UserID: userID, IsAdmin: role == user.RoleAdmin}
}

func actorFromContext(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return commands.Actor{}, false
	}
	role, _ := middleware.GetUserRole(c)
	return commands.Actor{ID: userID, IsAdmin: role == user.RoleAdmin}, true
}
