package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/controllers"
	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/middlewares"
	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/realtime"
	"github.com/restrohq/restro-app/services"
)

func SetupRouter(db *gorm.DB, bus *events.Bus, hub *realtime.Hub, store *notifications.Store, billing *services.BillingService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db, bus, hub)
	timeClockCtrl := controllers.NewTimeClockController(db, bus, hub)
	shiftCtrl := controllers.NewShiftController(db)
	inventoryCtrl := controllers.NewInventoryController(db, bus)
	receiptCtrl := controllers.NewReceiptController(db, bus)
	taskCtrl := controllers.NewTaskController(db, bus)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	tableCtrl := controllers.NewTableController(db)
	notificationCtrl := controllers.NewNotificationController(db, store)
	adminCtrl := controllers.NewAdminController(db, billing, hub)
	streamCtrl := controllers.NewStreamController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Voice assistant webhook, authenticated by shared secret.
	r.POST("/webhooks/vapi/orders", orderCtrl.CreateVoiceOrder)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.SubscriptionGuard(db))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", middlewares.RequireRole("manager"), userCtrl.GetAllUsers)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", middlewares.RequireRole("manager"), orderCtrl.DeleteOrder)

	// TIME CLOCK
	auth.POST("/timeclock/clock-in", timeClockCtrl.ClockIn)
	auth.POST("/timeclock/clock-out", timeClockCtrl.ClockOut)
	auth.POST("/timeclock/break/start", timeClockCtrl.StartBreak)
	auth.POST("/timeclock/break/end", timeClockCtrl.EndBreak)
	auth.GET("/timeclock/entries", middlewares.RequireRole("manager"), timeClockCtrl.GetEntries)

	// SHIFTS
	auth.GET("/shifts", shiftCtrl.GetAllShifts)
	auth.POST("/shifts", middlewares.RequireRole("manager"), shiftCtrl.CreateShift)
	auth.DELETE("/shifts/:shift_id", middlewares.RequireRole("manager"), shiftCtrl.DeleteShift)

	// INVENTORY
	auth.GET("/inventory", inventoryCtrl.GetAllItems)
	auth.POST("/inventory", middlewares.RequireRole("manager"), inventoryCtrl.CreateItem)
	auth.PATCH("/inventory/:item_id", middlewares.RequireRole("manager"), inventoryCtrl.UpdateItem)
	auth.POST("/inventory/:item_id/adjust", inventoryCtrl.AdjustStock)
	auth.DELETE("/inventory/:item_id", middlewares.RequireRole("manager"), inventoryCtrl.DeleteItem)

	// RECEIPTS
	receiptGroup := auth.Group("/receipts")
	receiptGroup.Use(middlewares.ReceiptLoggerMiddleware())
	{
		receiptGroup.GET("", receiptCtrl.GetAllReceipts)
		receiptGroup.POST("", receiptCtrl.UploadReceipt)
		receiptGroup.GET("/:receipt_id", receiptCtrl.GetReceiptByID)
		receiptGroup.POST("/:receipt_id/apply", middlewares.RequireRole("manager"), receiptCtrl.ApplyReceipt)
	}

	// TASKS
	auth.GET("/tasks", taskCtrl.GetAllTasks)
	auth.POST("/tasks", taskCtrl.CreateTask)
	auth.POST("/tasks/:task_id/complete", taskCtrl.CompleteTask)
	auth.DELETE("/tasks/:task_id", middlewares.RequireRole("manager"), taskCtrl.DeleteTask)

	// MENU
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.POST("/menus", middlewares.RequireRole("manager"), menuCtrl.CreateMenu)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	auth.PATCH("/menus/:menu_id", middlewares.RequireRole("manager"), menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", middlewares.RequireRole("manager"), menuCtrl.DeleteMenu)

	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", middlewares.RequireRole("manager"), categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", middlewares.RequireRole("manager"), categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", middlewares.RequireRole("manager"), categoryCtrl.DeleteCategory)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", middlewares.RequireRole("manager"), tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.POST("/notifications/:notif_id/read", notificationCtrl.MarkRead)

	// ADMIN
	auth.GET("/dashboard/stats", middlewares.RequireRole("manager"), adminCtrl.GetDashboardStats)
	auth.GET("/billing/subscription", middlewares.RequireRole("manager"), adminCtrl.GetSubscription)
	auth.POST("/billing/subscription", middlewares.RequireRole("owner"), adminCtrl.ActivateSubscription)
	auth.GET("/reports/export-pdf", middlewares.RequireRole("manager"), adminCtrl.ExportPDF)

	// WebSocket endpoint with its own token auth.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", streamCtrl.Handle)
	}

	return r
}
