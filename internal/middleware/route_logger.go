package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RouteLogger emits one line on entry and one on exit for every request,
// both carrying the trace ID so a request's logs stitch together.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		method, path := c.Method(), c.Path()
		start := time.Now()
		log.Info().Str("trace_id", traceID).Str("method", method).Str("path", path).Msg("Request started")
		err := c.Next()
		log.Info().Str("trace_id", traceID).Str("method", method).Str("path", path).
			Int64("ms", time.Since(start).Milliseconds()).Msg("Request finished")
		return err
	}
}
