package notifications

// Notification severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Recipient kinds.
const (
	RecipientRestaurant = "restaurant"
	RecipientRole       = "role"
	RecipientUser       = "user"
)

// Recipient is a tagged variant addressing a notification to the whole
// restaurant, to every holder of a role, or to a single user. Role is only
// meaningful when Kind is RecipientRole, UserID only when Kind is
// RecipientUser.
type Recipient struct {
	Kind   string `json:"kind"`
	Role   string `json:"role,omitempty"`
	UserID uint   `json:"user_id,omitempty"`
}

// Draft is an in-memory notification produced by the template builder,
// not yet persisted. A single event may yield zero, one or many drafts.
type Draft struct {
	Severity   string                 `json:"severity"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Recipients []Recipient            `json:"recipients"`
}

func broadcast() []Recipient {
	return []Recipient{{Kind: RecipientRestaurant}}
}

func roles(names ...string) []Recipient {
	rs := make([]Recipient, 0, len(names))
	for _, name := range names {
		rs = append(rs, Recipient{Kind: RecipientRole, Role: name})
	}
	return rs
}
