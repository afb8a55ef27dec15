package category

import "time"

type Category struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"userId"`

	Name        string  `gorm:"not null" json:"name"`
	Color       string  `gorm:"not null;default:'#6b7280'" json:"color"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	IsDefault   bool    `gorm:"not null;default:false" json:"isDefault"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

// Defaults are seeded for every new account at registration.
func Defaults(userID uint64) []Category {
	return []Category{
		{UserID: userID, Name: "Assignments", Color: "#EF4444", IsDefault: true},
		{UserID: userID, Name: "Research", Color: "#3B82F6", IsDefault: true},
		{UserID: userID, Name: "Exams", Color: "#F59E0B", IsDefault: true},
		{UserID: userID, Name: "Presentations", Color: "#10B981", IsDefault: true},
		{UserID: userID, Name: "Reading", Color: "#8B5CF6", IsDefault: true},
	}
}
