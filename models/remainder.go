package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultStaffReminder is used when no active template exists.
const DefaultStaffReminder = "Olá [StaffName], lembrete: amanhã ([EventDate]) tem serviço \"[EventTitle]\"[Location]."

// ReminderTemplate is the SMS body sent to staff the day before a service.
// Placeholders: [StaffName], [EventTitle], [EventDate], [Location].
type ReminderTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
