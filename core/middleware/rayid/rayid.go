package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the ray ID.
	Header = "X-Ray-ID"
	// LocalKey is the fiber.Ctx locals key holding the ray ID.
	LocalKey = "ray_id"
)

// New returns a middleware tagging every request with a ray ID. A ray ID sent
// by the caller is kept.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
