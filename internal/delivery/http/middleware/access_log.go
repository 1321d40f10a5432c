package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AccessLogMiddleware writes one structured line per request and makes sure
// every response carries an X-Request-ID, minted here when the client did not
// send one.
type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		started := time.Now()
		rid := requestID(c)

		err := c.Next()

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s host=%s method=%s path=%s status=%d latency=%s req_bytes=%d resp_bytes=%d ua=%q referer=%q",
			rid,
			c.IP(),
			c.Hostname(),
			c.Method(),
			c.OriginalURL(),
			c.Response().StatusCode(),
			time.Since(started),
			c.Request().Header.ContentLength(),
			c.Response().Header.ContentLength(),
			c.Get("User-Agent"),
			c.Get("Referer"),
		)

		return err
	}
}

func requestID(c fiber.Ctx) string {
	rid := c.Get("X-Request-ID")
	if rid == "" {
		rid = uuid.NewString()
		c.Set("X-Request-ID", rid)
	}
	return rid
}
