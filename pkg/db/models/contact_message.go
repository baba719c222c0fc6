package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage persists a submission from the website contact form.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     *string   `gorm:"column:phone"`
	Company   *string   `gorm:"column:company"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
