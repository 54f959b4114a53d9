package middleware

import (
	"log/slog"
	"net/http"

	"colchester-plumber-api/internal/delivery/http/response"
	"colchester-plumber-api/pkg/apperror"
	"colchester-plumber-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.From(err)
		if appErr.Kind == apperror.KindUnknown || appErr.Err != nil {
			level := slog.LevelError
			if appErr.Code < http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			// Never expose internal error details to clients; log them server-side.
			logger.Log.Log(c.Request.Context(), level, "Request failed",
				"status", appErr.Code,
				"kind", appErr.Kind.String(),
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
				"error", err,
			)
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Detail)
	}
}
