package notifications

import (
	"fmt"

	"github.com/restrohq/restro-app/events"
)

// BuildDrafts maps a domain event to its user-facing notification drafts.
// It is a pure function of the event: same input, same output. Event types
// outside the fixed enumeration yield no drafts and are silently dropped.
func BuildDrafts(event events.DomainEvent) []Draft {
	p := event.Payload

	switch event.Type {
	case events.StaffClockIn:
		name := payloadString(p, "staffName", "A staff member")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Staff Clocked In",
			Message:    fmt.Sprintf("%s clocked in.", name),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.StaffClockOut:
		name := payloadString(p, "staffName", "A staff member")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Staff Clocked Out",
			Message:    fmt.Sprintf("%s clocked out.", name),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.StaffBreakStart:
		name := payloadString(p, "staffName", "A staff member")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Break Started",
			Message:    fmt.Sprintf("%s started a break.", name),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.StaffBreakEnd:
		name := payloadString(p, "staffName", "A staff member")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Break Ended",
			Message:    fmt.Sprintf("%s ended a break.", name),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.StaffOpenShift:
		name := payloadString(p, "staffName", "A staff member")
		start := payloadString(p, "shiftStart", "its scheduled start")
		return []Draft{{
			Severity:   SeverityWarning,
			Title:      "Open Shift",
			Message:    fmt.Sprintf("%s has not clocked in for the shift starting at %s.", name, start),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.OrderCreatedWeb:
		orderID := payloadString(p, "orderId", "unknown")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "New Order",
			Message:    fmt.Sprintf("Order %s received via web.", orderID),
			Metadata:   p,
			Recipients: broadcast(),
		}}

	case events.OrderCreatedVapi:
		orderID := payloadString(p, "orderId", "unknown")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "New Order",
			Message:    fmt.Sprintf("Order %s received via voice assistant.", orderID),
			Metadata:   p,
			Recipients: broadcast(),
		}}

	case events.OrderStatusChanged:
		orderID := payloadString(p, "orderId", "unknown")
		status := payloadString(p, "newStatus", "a new status")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Order Status Updated",
			Message:    fmt.Sprintf("Order %s updated to %s.", orderID, status),
			Metadata:   p,
			Recipients: broadcast(),
		}}

	case events.ReceiptUploaded:
		name := payloadString(p, "uploadedBy", "A staff member")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Receipt Uploaded",
			Message:    fmt.Sprintf("%s uploaded a supplier receipt.", name),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.ReceiptApplied:
		receiptID := payloadString(p, "receiptId", "unknown")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Receipt Applied",
			Message:    fmt.Sprintf("Receipt %s was applied to inventory.", receiptID),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.InventoryLowStock:
		item := payloadString(p, "itemName", "An inventory item")
		return []Draft{{
			Severity:   SeverityWarning,
			Title:      "Low Stock",
			Message:    fmt.Sprintf("%s is low on stock.", item),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.TaskCreated:
		title := payloadString(p, "taskTitle", "A new task")
		draft := Draft{
			Severity: SeverityInfo,
			Title:    "New Task",
			Message:  fmt.Sprintf("Task '%s' was created.", title),
			Metadata: p,
		}
		if id, ok := payloadUint(p, "assigneeId"); ok {
			draft.Recipients = []Recipient{{Kind: RecipientUser, UserID: id}}
		} else {
			draft.Recipients = broadcast()
		}
		return []Draft{draft}

	case events.TaskCompleted:
		title := payloadString(p, "taskTitle", "A task")
		return []Draft{{
			Severity:   SeverityInfo,
			Title:      "Task Completed",
			Message:    fmt.Sprintf("Task '%s' was completed.", title),
			Metadata:   p,
			Recipients: roles("owner", "manager"),
		}}

	case events.SystemError:
		msg := payloadString(p, "message", "An unexpected error occurred.")
		return []Draft{{
			Severity:   SeverityCritical,
			Title:      "System Error",
			Message:    msg,
			Metadata:   p,
			Recipients: roles("owner"),
		}}

	case events.SystemWarning:
		msg := payloadString(p, "message", "A system warning was raised.")
		return []Draft{{
			Severity:   SeverityWarning,
			Title:      "System Warning",
			Message:    msg,
			Metadata:   p,
			Recipients: roles("owner"),
		}}
	}

	// Unhandled event types are dropped, not errored.
	return nil
}

func payloadString(p map[string]interface{}, key, fallback string) string {
	if p == nil {
		return fallback
	}
	v, ok := p[key]
	if !ok || v == nil {
		return fallback
	}
	s := fmt.Sprint(v)
	if s == "" {
		return fallback
	}
	return s
}

func payloadUint(p map[string]interface{}, key string) (uint, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case uint:
		return v, true
	case int:
		if v > 0 {
			return uint(v), true
		}
	case int64:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
}
