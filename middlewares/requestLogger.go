package middlewares

import (
	"strings"
	"time"

	"github.com/fireguard/cms-api/initializers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(requestIDHeader, requestID)

		ctx.Next()

		status := ctx.Writer.Status()
		path := ctx.FullPath()
		if path == "" {
			path = ctx.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(ctx.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}
		if claims, ok := CurrentUser(ctx); ok {
			fields = append(fields, "user", claims.Username)
		}

		switch {
		case status >= 500:
			initializers.Log.Errorw("HTTP request", fields...)
		case status >= 400:
			initializers.Log.Warnw("HTTP request", fields...)
		default:
			initializers.Log.Infow("HTTP request", fields...)
		}
	}
}
