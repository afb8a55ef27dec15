package resource

import (
	"time"

	"github.com/lib/pq"
)

// Resource is study material attached to an account: a link, an uploaded
// file, or a note.
type Resource struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"userId"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Type        string  `gorm:"not null" json:"type"` // LINK/FILE/NOTE

	URL      *string `json:"url,omitempty"`
	FilePath *string `json:"filePath,omitempty"`
	FileSize *int64  `json:"fileSize,omitempty"`

	Tags     pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`
	IsPublic bool           `gorm:"not null;default:false" json:"isPublic"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}
