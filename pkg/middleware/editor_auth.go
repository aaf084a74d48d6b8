package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trailmap/pkg/utils"
)

// EditorAuthMiddleware guards the edit routes. The session token wraps the
// caller's OSM credential pair; the pair is stashed on the context for the
// controller and never logged.
func EditorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateEditorToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("osm_token", claims.OsmToken)
		c.Set("osm_secret", claims.OsmSecret)
		c.Next()
	}
}
