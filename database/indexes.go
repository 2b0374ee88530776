package database

import (
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/utils"
)

// notification_recipients is queried by (restaurant, kind, role) and by
// (restaurant, user) on every notification list; AutoMigrate only creates
// the single-column indexes declared on the models.
var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_notif_recipients_role ON notification_recipients (restaurant_id, kind, role)",
	"CREATE INDEX IF NOT EXISTS idx_notif_recipients_user ON notification_recipients (restaurant_id, kind, user_id)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications (restaurant_id, created_at)",
	"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (restaurant_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_timeclock_open ON time_clock_entries (restaurant_id, clock_out_at)",
}

// EnsureIndexes applies the composite indexes the hot query paths rely on.
func EnsureIndexes(db *gorm.DB) error {
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating index: %v\nStatement: %s", err, stmt)
			continue
		}
	}
	utils.InfoLogger.Printf("Index setup completed")
	return nil
}
