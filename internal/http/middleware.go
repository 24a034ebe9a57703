package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/auth"
)

const identityKey = "identity"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth resolves the caller identity from the bearer token and stores
// it in the request context. Requests without a valid token never reach the
// handler.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

		userID, err := auth.ResolveIdentity(token, h.jwtSecret)
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.Set(identityKey, userID)
		c.Next()
	}
}

// checkItemID rejects syntactically malformed item identifiers before any
// other middleware or handler logic runs.
func (h *Handler) checkItemID(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("itemId")); err != nil {
		h.respondError(c, apperr.InvalidID("item"))
		return
	}
	c.Next()
}

// identityFromContext returns the caller identity placed by requireAuth.
// Handlers behind requireAuth may assume it is present.
func identityFromContext(c *gin.Context) string {
	return c.GetString(identityKey)
}
