package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/pkg/response"
)

// Recovery converts panics into the structured failure shape instead of an
// empty 500, so clients can always branch on error_code. Detail goes to the
// server log only.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Error("panic recovered in handler")
		response.AbortFail(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	})
}
