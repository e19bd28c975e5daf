package models

import "time"

// User owns a set of tasks. Deleting a user removes its tasks.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PhoneNumber *string   `gorm:"type:text" json:"phone_number"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	Tasks       []Task    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
