package startupRoutes

import (
	startupControllers "venturescope/controllers/startup"
	"venturescope/middleware"
	startupValidators "venturescope/validators/startup"

	"github.com/gofiber/fiber/v2"
)

func SetupStartupRoutes(app *fiber.App, ctl *startupControllers.Controller) {
	startupGroup := app.Group("/api/startups")

	// Key generation and listing are owner operations; read and fill are open
	// because the submission key itself is the capability.
	startupGroup.Post("/create", middleware.JWTMiddleware, ctl.Create)
	startupGroup.Get("/", middleware.JWTMiddleware, ctl.List)
	startupGroup.Get("/:key", ctl.Get)
	startupGroup.Post("/:key", startupValidators.Submit(), ctl.Submit)
}
