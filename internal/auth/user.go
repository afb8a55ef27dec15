package auth

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`

	StudentID  *string `gorm:"uniqueIndex" json:"studentId,omitempty"`
	Programme  *string `json:"programme,omitempty"`
	University *string `json:"university,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`

	Role       string `gorm:"not null;default:'USER'" json:"role"` // USER/ADMIN
	IsActive   bool   `gorm:"not null;default:true" json:"isActive"`
	IsVerified bool   `gorm:"not null;default:false" json:"isVerified"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// FullName is the display name used in outgoing email.
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }
