package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"kage_vpn_store/database"
	"kage_vpn_store/handler"
	"kage_vpn_store/helper"
	"kage_vpn_store/notify"
	"kage_vpn_store/router"
	"kage_vpn_store/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // payment screenshots
	})

	allowOrigins := os.Getenv("CORS_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	helper.InitSecurityStores(rdb)

	store := database.NewStore(database.DB)
	helper.Users = store.Users()

	mailer := notify.NewMailer()
	mailer.Start()
	defer mailer.Stop()

	handler.Init(workflow.NewService(store, mailer))

	helper.StartExpiryReminderScheduler(mailer)
	defer helper.StopExpiryReminderScheduler()

	router.SetupRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
