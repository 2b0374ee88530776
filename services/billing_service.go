package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/restrohq/restro-app/events"
	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

// BillingService tracks subscription state per restaurant. The renewal
// checker marks lapsed subscriptions past_due and raises a system.warning
// so owners see it in their notification feed.
type BillingService struct {
	DB       *gorm.DB
	Bus      *events.Bus
	StopChan chan struct{}
	Interval time.Duration
}

func NewBillingService(db *gorm.DB, bus *events.Bus) *BillingService {
	return &BillingService{
		DB:       db,
		Bus:      bus,
		StopChan: make(chan struct{}),
		Interval: 15 * time.Minute,
	}
}

// Activate starts or renews a subscription for one billing period.
func (bs *BillingService) Activate(restaurantID uint, plan string, period time.Duration) (*models.Subscription, error) {
	var sub models.Subscription
	err := bs.DB.Where("restaurant_id = ?", restaurantID).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		sub = models.Subscription{
			RestaurantID:     restaurantID,
			Plan:             plan,
			Status:           models.SubscriptionStatusActive,
			CurrentPeriodEnd: time.Now().Add(period),
		}
		if err := bs.DB.Create(&sub).Error; err != nil {
			return nil, err
		}
		return &sub, nil
	}
	if err != nil {
		return nil, err
	}

	sub.Plan = plan
	sub.Status = models.SubscriptionStatusActive
	sub.CurrentPeriodEnd = time.Now().Add(period)
	if err := bs.DB.Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (bs *BillingService) StartRenewalChecker() {
	go func() {
		ticker := time.NewTicker(bs.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				bs.checkRenewals()
			case <-bs.StopChan:
				return
			}
		}
	}()
}

func (bs *BillingService) Stop() {
	close(bs.StopChan)
}

func (bs *BillingService) checkRenewals() {
	now := time.Now()

	var lapsed []models.Subscription
	if err := bs.DB.
		Where("status = ? AND current_period_end < ?", models.SubscriptionStatusActive, now).
		Limit(100).
		Find(&lapsed).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching lapsed subscriptions: %v", err)
		return
	}

	for _, sub := range lapsed {
		if err := bs.DB.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			Update("status", models.SubscriptionStatusPastDue).Error; err != nil {
			utils.ErrorLogger.Printf("Error marking subscription past due: %v", err)
			continue
		}

		event := events.DomainEvent{
			RestaurantID: sub.RestaurantID,
			Type:         events.SystemWarning,
			Actor:        "system",
			Payload: map[string]interface{}{
				"message": "Your subscription payment is past due. Service may be limited.",
				"plan":    sub.Plan,
			},
			OccurredAt: now,
		}
		if err := bs.Bus.Emit(context.Background(), events.SystemWarning, event); err != nil {
			utils.ErrorLogger.Printf("Error emitting subscription warning: %v", err)
		}
	}
}
