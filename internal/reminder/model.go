package reminder

import "time"

const (
	TypeEmail = "EMAIL"
	TypePush  = "PUSH"
	TypeSMS   = "SMS"
)

type Reminder struct {
	ID     uint64  `gorm:"primaryKey" json:"id"`
	UserID uint64  `gorm:"index;not null" json:"userId"`
	TaskID *uint64 `gorm:"index" json:"taskId,omitempty"`

	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null;default:''" json:"message"`
	Type    string `gorm:"not null;default:'EMAIL'" json:"type"` // EMAIL/PUSH/SMS

	ScheduledAt time.Time  `gorm:"index;not null;type:timestamptz" json:"scheduledAt"`
	IsSent      bool       `gorm:"not null;default:false" json:"isSent"`
	SentAt      *time.Time `gorm:"type:timestamptz" json:"sentAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// BatchResult is the per-user outcome of one daily reminder run. It is
// never persisted; the manual trigger returns the full list to the caller.
type BatchResult struct {
	UserID     uint64 `json:"userId"`
	Email      string `json:"email"`
	Success    bool   `json:"success"`
	TasksCount int    `json:"tasksCount"`
	MessageID  string `json:"messageId,omitempty"`
	Error      string `json:"error,omitempty"`
}
