package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/notifications"
	"github.com/restrohq/restro-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.Shift{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.TimeClockEntry{},
		&models.Task{},
		&models.Notification{},
		&models.NotificationRecipient{},
		&models.Subscription{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type noopDispatcher struct{}

func (noopDispatcher) EmitToRestaurant(restaurantID uint, payload notifications.DispatchPayload) {}

// setupPipeline wires the bus, store and notification service the way main
// does, minus the websocket hub and outbound messaging.
func setupPipeline(t *testing.T, db *gorm.DB) (*events.Bus, *notifications.Store) {
	utils.InitLogger()
	bus := events.NewBus()
	store := notifications.NewStore(db)
	notifications.NewService(bus, store, noopDispatcher{}, nil)
	return bus, store
}

// authAs injects the context values the auth middleware would set.
func authAs(restaurantID, userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("restaurantID", restaurantID)
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func seedUser(t *testing.T, db *gorm.DB, restaurantID uint, name, email, role, password string) models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		RestaurantID: restaurantID,
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) models.Restaurant {
	restaurant := models.Restaurant{Name: name}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func notificationsOfType(t *testing.T, db *gorm.DB, eventType string) []models.Notification {
	var notifs []models.Notification
	if err := db.Where("type = ?", eventType).Find(&notifs).Error; err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	return notifs
}
