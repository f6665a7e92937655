package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CalendarConfirmed = "confirmed"
	CalendarCancelled = "cancelled"
)

// CalendarEvent is a manually booked service that did not come from a
// proposal.
type CalendarEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	EventDate    string    `gorm:"type:varchar(10);not null;index" json:"eventDate"`
	EventTime    *string   `gorm:"type:varchar(5)" json:"eventTime"`
	EventEndDate *string   `gorm:"type:varchar(10)" json:"eventEndDate"`

	ClientName    string  `json:"clientName"`
	ClientEmail   *string `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone"`
	ClientCompany *string `json:"clientCompany"`
	ClientNIF     *string `gorm:"column:client_nif" json:"clientNif"`

	EventLocation *string   `json:"eventLocation"`
	GuestCount    *int      `json:"guestCount"`
	EventType     EventType `gorm:"type:varchar(20)" json:"eventType"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
