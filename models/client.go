package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a contact/billing entity used to pre-fill proposals. Proposals
// copy its fields; they never reference it.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name    string  `gorm:"not null;index" json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	NIF     *string `gorm:"column:nif;type:varchar(9)" json:"nif"`

	AddressStreet     *string `json:"addressStreet"`
	AddressCity       *string `json:"addressCity"`
	AddressPostalCode *string `json:"addressPostalCode"`
	AddressCountry    *string `json:"addressCountry"`

	Notes *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (cl *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return
}
