package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
)

// TimerMetrics middleware tracks request duration and logs method, path and
// status for every request, plus the authenticated user when a trust gate
// attached one.
func TimerMetrics(c *fiber.Ctx) error {
	startTime := time.Now()

	err := c.Next()

	duration := time.Since(startTime)
	method := c.Method()
	path := c.Path()
	statusCode := c.Response().StatusCode()

	if user, ok := c.Locals(UserKey).(*dto.AuthUser); ok {
		log.Printf("[METRICS] %s %s - Status: %d - Duration: %dms - User: %s",
			method, path, statusCode, duration.Milliseconds(), user.UserID)
	} else {
		log.Printf("[METRICS] %s %s - Status: %d - Duration: %dms",
			method, path, statusCode, duration.Milliseconds())
	}

	return err
}
