package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NoCache stamps the uniform cache-defeating headers and a freshly computed
// Last-Modified on every response, success or failure alike.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate, max-age=0")
		c.Set(fiber.HeaderPragma, "no-cache")
		c.Set(fiber.HeaderExpires, "0")
		c.Set(fiber.HeaderLastModified, time.Now().UTC().Format(http.TimeFormat))

		return err
	}
}
