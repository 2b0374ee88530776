package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/config"
	"github.com/restrohq/restro-app/database"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/realtime"
	"github.com/restrohq/restro-app/router"
	"github.com/restrohq/restro-app/services"
	"github.com/restrohq/restro-app/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Core notification pipeline: bus -> service -> store + hub.
	bus := events.NewBus()
	store := notifications.NewStore(db)
	hub := realtime.NewHub()

	orderNotifier := buildOrderNotifier(db)
	notifications.NewService(bus, store, hub, orderNotifier)

	// Background jobs.
	openShifts := services.NewOpenShiftMonitor(db, bus)
	openShifts.Start()
	defer openShifts.Stop()

	cleanup := services.NewNotificationCleanup(store)
	cleanup.Start()
	defer cleanup.Stop()

	billing := services.NewBillingService(db, bus)
	billing.StartRenewalChecker()
	defer billing.Stop()

	r := router.SetupRouter(db, bus, hub, store, billing)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// buildOrderNotifier wires the SES/SMS clients when a region is configured.
// Without one the pipeline still runs; outbound messaging is simply off.
func buildOrderNotifier(db *gorm.DB) notifications.OrderNotifier {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		utils.InfoLogger.Println("AWS_REGION not set, outbound order messaging disabled")
		return nil
	}

	ctx := context.Background()
	sesClient, err := services.NewSESClient(ctx, region)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to init SES client: %v", err)
		return nil
	}
	snsClient, err := services.NewSNSClient(ctx, region)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to init SNS client: %v", err)
		return nil
	}

	return services.NewOrderNotificationService(db, sesClient, snsClient)
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.Shift{},
		&models.TimeClockEntry{},
		&models.Task{},
		&models.Subscription{},
		&models.Notification{},
		&models.NotificationRecipient{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.EnsureIndexes(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up indexes: %v", err)
	}
}
