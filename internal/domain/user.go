package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login identity scoped to one business.
type User struct {
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string     `gorm:"column:fullname;type:varchar(120);not null" json:"fullname"`
	Email        string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"column:role;type:varchar(20);not null;default:member" json:"role"`
	BusinessID   *uuid.UUID `gorm:"column:business_id;type:uuid" json:"business_id"`
	CreatedAt    time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
