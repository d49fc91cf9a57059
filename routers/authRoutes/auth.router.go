package authRoutes

import (
	authControllers "venturescope/controllers/auth"
	"venturescope/middleware"
	authValidators "venturescope/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authControllers.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), ctl.Signup)
	authGroup.Post("/login", authValidators.Login(), ctl.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, ctl.Me)
}
