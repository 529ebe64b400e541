package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's api registration type.
// Fx collects them in the "routes" group and main calls Setup on each.
type Route interface {
	Setup(app *fiber.App)
}
