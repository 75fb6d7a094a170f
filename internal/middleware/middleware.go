package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/response"
)

const (
	// SubjectHeader carries the id of the user performing the request.
	SubjectHeader = "X-Sharer-User-Id"

	requestIDHeader = "X-Request-Id"
	subjectKey      = "subjectUserID"
)

// RequestID assigns a request id when the caller did not send one and echoes
// it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// Logger logs one line per request with method, path, status and latency.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

// Recovery converts panics into 500 responses instead of dropped connections.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(500, response.ErrorBody{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

// Subject requires the X-Sharer-User-Id header and stores the parsed user id
// on the context. Requests without a well-formed subject are rejected before
// any handler runs.
func Subject() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SubjectHeader)
		if raw == "" {
			response.Error(c, domain.NewValidationError(SubjectHeader+" header is required"))
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domain.NewValidationError("invalid "+SubjectHeader+" header"))
			c.Abort()
			return
		}
		c.Set(subjectKey, id)
		c.Next()
	}
}

// SubjectID returns the user id stored by Subject.
func SubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
