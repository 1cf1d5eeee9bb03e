package rayid

import (
	"file-gateway/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the request and response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// Config configures the RayID middleware.
type Config struct {
	// Generator creates new ids. Defaults to uuid.NewString.
	Generator func() string
}

// New returns a middleware that tags every request with a ray id. An id sent by
// the client in X-Ray-ID is kept so traces can span services.
func New(config ...Config) fiber.Handler {
	cfg := Config{Generator: uuid.NewString}
	if len(config) > 0 && config[0].Generator != nil {
		cfg.Generator = config[0].Generator
	}

	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = cfg.Generator()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

// FromContext returns the ray id of the request, or "" when none is set.
func FromContext(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
