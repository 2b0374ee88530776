package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"

	"github.com/restrohq/restro-app/models"
	"github.com/restrohq/restro-app/utils"
)

// EmailSender sends a transactional email. Satisfied by SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender publishes a text message. Satisfied by SNSClient.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// OrderNotificationService sends customer-facing SMS/email for order
// lifecycle events. Implements notifications.OrderNotifier.
type OrderNotificationService struct {
	DB     *gorm.DB
	Email  EmailSender
	SMS    SMSSender
	Sender string
}

func NewOrderNotificationService(db *gorm.DB, email EmailSender, sms SMSSender) *OrderNotificationService {
	sender := os.Getenv("NOTIFY_EMAIL_SENDER")
	if sender == "" {
		sender = "orders@restro.app"
	}
	return &OrderNotificationService{
		DB:     db,
		Email:  email,
		SMS:    sms,
		Sender: sender,
	}
}

// OrderCreated sends the order confirmation to the customer's contact
// channels. Missing contact details skip the channel rather than fail.
func (s *OrderNotificationService) OrderCreated(ctx context.Context, restaurantID uint, orderID string) error {
	order, err := s.loadOrder(restaurantID, orderID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order #%d confirmed", order.ID)
	body := fmt.Sprintf("Your order #%d has been received. Total: %s.",
		order.ID, utils.FormatCurrency(order.TotalAmount))
	return s.send(ctx, order, subject, body)
}

// OrderStatusChanged tells the customer the order moved to a new status.
func (s *OrderNotificationService) OrderStatusChanged(ctx context.Context, restaurantID uint, orderID, newStatus string) error {
	order, err := s.loadOrder(restaurantID, orderID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order #%d update", order.ID)
	body := fmt.Sprintf("Your order #%d is now %s.", order.ID, newStatus)
	return s.send(ctx, order, subject, body)
}

func (s *OrderNotificationService) loadOrder(restaurantID uint, orderID string) (*models.Order, error) {
	id, err := strconv.ParseUint(orderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q", orderID)
	}

	var order models.Order
	if err := s.DB.Preload("Customer").
		Where("restaurant_id = ?", restaurantID).
		First(&order, uint(id)).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderNotificationService) send(ctx context.Context, order *models.Order, subject, body string) error {
	if order.Customer == nil {
		return nil
	}

	if email := order.Customer.Email; email != "" && s.Email != nil {
		input := &ses.SendEmailInput{
			Source: aws.String(s.Sender),
			Destination: &sestypes.Destination{
				ToAddresses: []string{email},
			},
			Message: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		}
		if _, err := s.Email.SendEmail(ctx, input); err != nil {
			return err
		}
	}

	if phone := order.Customer.Phone; phone != "" && s.SMS != nil {
		input := &sns.PublishInput{
			PhoneNumber: aws.String(phone),
			Message:     aws.String(body),
		}
		if _, err := s.SMS.Publish(ctx, input); err != nil {
			return err
		}
	}

	return nil
}
