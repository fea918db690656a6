package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"earnbot/bot"
	"earnbot/database"
	"earnbot/jobs"
	"earnbot/logger"
	"earnbot/notify"
	"earnbot/routes"
	"earnbot/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment")
	}

	logger.Init(os.Getenv("LOG_LEVEL"))

	database.Connect()

	if err := settings.EnsureDefaults(); err != nil {
		logger.Fatal("Failed to seed settings", zap.Error(err))
	}

	var b *bot.Bot
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		var err error
		b, err = bot.New(token, os.Getenv("WEBAPP_URL"))
		if err != nil {
			logger.Fatal("Failed to start bot", zap.Error(err))
		}
		notify.Init(b.Telebot())
		b.Start()
	} else {
		logger.Warn("BOT_TOKEN not set, running API only")
	}

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app)
	jobs.Start()

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("Server running", zap.String("addr", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Gracefully shutting down...")
	if b != nil {
		b.Stop()
	}
	if err := app.Shutdown(); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
