package rest

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
)

const accountIDKey = "account_id"

// authMiddleware resolves the bearer token into the calling account id.
func authMiddleware(logger *slog.Logger, auth authService) gin.HandlerFunc {
	log := logger.With("component", "rest", "method", "authMiddleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		accountID, err := auth.ParseToken(token)
		if err != nil {
			log.Debug("rejected token", "error", err)
			abortWithError(c, err)
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}
