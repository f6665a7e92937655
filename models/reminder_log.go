// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffMemberID uuid.UUID `gorm:"type:uuid;index;not null" json:"staffMemberId"`
	AssignmentID  uuid.UUID `gorm:"type:uuid;index;not null" json:"assignmentId"`
	Phone         string    `gorm:"type:varchar(32)" json:"phone"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	MessageSID    string    `gorm:"type:varchar(64)" json:"messageSid"`
	SentAt        time.Time `json:"sentAt"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
