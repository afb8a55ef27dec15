package course

import "time"

type Course struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"userId"`

	Code        string  `gorm:"not null" json:"code"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	Credits  *int    `json:"credits,omitempty"`
	Semester *string `json:"semester,omitempty"`
	Year     *int    `json:"year,omitempty"`

	StartDate *time.Time `gorm:"type:timestamptz" json:"startDate,omitempty"`
	EndDate   *time.Time `gorm:"type:timestamptz" json:"endDate,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}
