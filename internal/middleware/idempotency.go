package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a POST carries an
// Idempotency-Key already seen for the same route and user. Only 2xx
// responses are stored. Must run after Auth.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		log := logger.Ctx(c.Request.Context())

		userID := c.GetString("user_id")
		if userID == "" {
			log.Warn("idempotency check failed: no user_id in context")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		route := c.Request.Method + " " + c.FullPath()

		existing, err := repo.Get(c.Request.Context(), key, route, userID)
		if err != nil {
			// proceed without idempotency rather than block the request
			log.Error("failed to check idempotency key", logger.Err(err), logger.String("key", key))
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		statusCode := c.Writer.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}

		record := &models.IdempotencyRecord{
			Key:          key,
			Route:        route,
			UserID:       userID,
			ResponseBody: blw.body.Bytes(),
			StatusCode:   statusCode,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Store(c.Request.Context(), record); err != nil {
			// the request already succeeded
			log.Warn("failed to store idempotency key", logger.Err(err), logger.String("key", key))
			return
		}
		log.Debug("stored idempotency key",
			logger.String("key", key),
			logger.String("route", route),
			logger.Int("status_code", statusCode),
		)
	}
}
