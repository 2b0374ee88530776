package notifications

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
)

// Store persists notifications and their resolved recipient rows.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Created carries the generated id plus a client-side timestamp. The
// persisted created_at column defaults to the database clock, so the two
// values can diverge by call latency.
type Created struct {
	ID        uint   `json:"id"`
	CreatedAt string `json:"created_at"`
}

// CreateNotification inserts one notification row and one recipient row per
// draft recipient, all scoped to the given restaurant.
func (s *Store) CreateNotification(restaurantID uint, eventType string, draft Draft) (*Created, error) {
	notif := models.Notification{
		RestaurantID: restaurantID,
		Type:         eventType,
		Severity:     draft.Severity,
		Title:        draft.Title,
		Message:      draft.Message,
		Metadata:     serializeMetadata(draft.Metadata),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}
		for _, r := range draft.Recipients {
			row := models.NotificationRecipient{
				NotificationID: notif.ID,
				RestaurantID:   restaurantID,
				Kind:           r.Kind,
			}
			switch r.Kind {
			case RecipientRole:
				role := r.Role
				row.Role = &role
			case RecipientUser:
				userID := r.UserID
				row.UserID = &userID
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Created{
		ID:        notif.ID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ListForUser returns the notifications visible to a user: restaurant-wide
// ones, ones scoped to the user's role, and ones addressed to the user.
func (s *Store) ListForUser(restaurantID, userID uint, role string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifs []models.Notification
	err := s.DB.
		Joins("JOIN notification_recipients nr ON nr.notification_id = notifications.id").
		Where("notifications.restaurant_id = ?", restaurantID).
		Where("nr.kind = ? OR (nr.kind = ? AND nr.role = ?) OR (nr.kind = ? AND nr.user_id = ?)",
			RecipientRestaurant, RecipientRole, role, RecipientUser, userID).
		Group("notifications.id").
		Order("notifications.created_at DESC").
		Limit(limit).
		Find(&notifs).Error
	return notifs, err
}

// MarkRead stamps the recipient rows that address the user for one
// notification. Restaurant-wide and role rows are shared, so the read state
// covers every user they target.
func (s *Store) MarkRead(notificationID, restaurantID, userID uint, role string) error {
	now := time.Now()
	return s.DB.Model(&models.NotificationRecipient{}).
		Where("notification_id = ? AND restaurant_id = ?", notificationID, restaurantID).
		Where("kind = ? OR (kind = ? AND role = ?) OR (kind = ? AND user_id = ?)",
			RecipientRestaurant, RecipientRole, role, RecipientUser, userID).
		Update("read_at", now).Error
}

// DeleteOlderThan removes notifications past the retention cutoff together
// with their recipient rows. Used by the cleanup job only.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var ids []uint
	if err := s.DB.Model(&models.Notification{}).
		Where("created_at < ?", cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id IN ?", ids).
			Delete(&models.NotificationRecipient{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Notification{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// serializeMetadata renders metadata as JSON text. Values the encoder cannot
// handle (cycles, channels, funcs) fall back to '{}' instead of failing the
// write.
func serializeMetadata(metadata map[string]interface{}) string {
	if metadata == nil {
		return "{}"
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "{}"
	}
	return string(data)
}
