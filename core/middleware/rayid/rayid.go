package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the RayID on requests and responses.
const Header = "X-Ray-ID"

// LocalsKey is the fiber.Ctx locals key holding the RayID.
const LocalsKey = "ray_id"

// New returns a middleware that tags every request with a RayID. An incoming
// X-Ray-ID header is reused so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
