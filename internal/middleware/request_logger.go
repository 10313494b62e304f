package middleware

import (
	"time"

	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request and tags it with a
// request id, echoed back in the X-Request-ID header.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ctx.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Header("X-Request-ID", requestID)

		ctx.Next()

		status := ctx.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"http_method": ctx.Request.Method,
			"uri":         ctx.Request.URL.RequestURI(),
			"status_code": status,
			"latency_ms":  time.Since(start).Milliseconds(),
			"client_ip":   ctx.ClientIP(),
			"user_agent":  ctx.Request.UserAgent(),
		})

		if len(ctx.Errors) > 0 {
			entry.WithField("error", ctx.Errors.String()).Error("Request processing failed")
			return
		}
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}
