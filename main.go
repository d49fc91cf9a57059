package main

import (
	"log"
	"time"

	"venturescope/analysis"
	"venturescope/config"
	authControllers "venturescope/controllers/auth"
	startupControllers "venturescope/controllers/startup"
	"venturescope/database"
	authRoutes "venturescope/routers/authRoutes"
	startupRoutes "venturescope/routers/startupRoutes"
	"venturescope/store"
	"venturescope/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	var st store.Store
	if config.AppConfig.StorageDriver == "memory" {
		log.Println("Warning: Using in-memory storage. Data is lost on restart.")
		st = store.NewMemory()
	} else {
		st = store.NewGorm(database.ConnectDb())
	}

	analyzer := analysis.NewOpenAIClient(
		config.AppConfig.OpenAIApiURL,
		config.AppConfig.OpenAIApiKey,
		config.AppConfig.OpenAIModel,
		time.Duration(config.AppConfig.AnalysisTimeout)*time.Second,
	)

	scheduler := utils.StartAnalysisScheduler(st, analyzer)
	defer scheduler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, authControllers.New(st))
	startupRoutes.SetupStartupRoutes(app, startupControllers.New(st, analyzer))

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
