package main

import (
	"fmt"
	"log"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/routes"
	"msilva-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	settings := config.Load()

	config.Log = config.NewLogger(settings.LogLevel)
	defer config.Log.Sync()

	if err := config.ConnectDB(settings); err != nil {
		config.Log.Fatal("database unavailable", zap.Error(err))
	}
	if err := models.AutoMigrate(config.DB); err != nil {
		config.Log.Fatal("migration failed", zap.Error(err))
	}

	var sender services.Sender
	if settings.SMSEnabled() {
		sender = services.NewTwilioSender(settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioPhoneNumber)
		reminders := services.NewReminderService(config.DB, sender, settings.Location())
		scheduler, err := reminders.StartScheduler(settings.StaffReminderCron)
		if err != nil {
			config.Log.Fatal("invalid reminder schedule", zap.String("schedule", settings.StaffReminderCron), zap.Error(err))
		}
		defer scheduler.Stop()
	} else {
		config.Log.Info("twilio not configured, staff reminders disabled")
	}

	if settings.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(settings, sender)
	if settings.LogLevel == "debug" {
		printRoutes(r)
	}

	config.Log.Info("server starting", zap.String("port", settings.Port))
	if err := r.Run(":" + settings.Port); err != nil {
		config.Log.Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
