package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRole struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	DefaultHourlyRate float64   `gorm:"type:decimal(10,2);not null" json:"defaultHourlyRate"`
	SortOrder         int       `json:"sortOrder"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (r *StaffRole) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

type StaffMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	NIF       *string   `gorm:"column:nif;type:varchar(9)" json:"nif"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	IsActive  bool      `gorm:"index" json:"isActive"`

	Roles []StaffMemberRole `gorm:"foreignKey:StaffMemberID;constraint:OnDelete:CASCADE" json:"roles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *StaffMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

func (m StaffMember) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// StaffMemberRole links a member to a role, optionally overriding the
// role's default rate.
type StaffMemberRole struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffMemberID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"staffMemberId"`
	StaffRoleID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"staffRoleId"`
	CustomHourlyRate *float64   `gorm:"type:decimal(10,2)" json:"customHourlyRate"`
	Role             *StaffRole `gorm:"foreignKey:StaffRoleID" json:"role,omitempty"`
}

func (r *StaffMemberRole) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// StaffAssignment is a time-tracked piece of work on one service, keyed to
// either a manual calendar event or a proposal.
type StaffAssignment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffMemberID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"staffMemberId"`
	StaffRoleID     *uuid.UUID `gorm:"type:uuid;index" json:"staffRoleId"`
	CalendarEventID *uuid.UUID `gorm:"type:uuid;index" json:"calendarEventId"`
	ProposalID      *uuid.UUID `gorm:"type:uuid;index" json:"proposalId"`

	StartTime        *time.Time `gorm:"index" json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	HoursWorked      *float64   `gorm:"type:decimal(6,2)" json:"hoursWorked"`
	HourlyRate       float64    `gorm:"type:decimal(10,2)" json:"hourlyRate"`
	CustomHourlyRate *float64   `gorm:"type:decimal(10,2)" json:"customHourlyRate"`
	TotalPay         *float64   `gorm:"type:decimal(10,2)" json:"totalPay"`
	Notes            *string    `gorm:"type:text" json:"notes"`

	StaffMember *StaffMember `gorm:"foreignKey:StaffMemberID" json:"staffMember,omitempty"`
	StaffRole   *StaffRole   `gorm:"foreignKey:StaffRoleID" json:"staffRole,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StaffAssignment) TableName() string {
	return "service_staff_assignments"
}

func (a *StaffAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
