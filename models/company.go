package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCompanyName = "MSilva"

// CompanyProfile holds the identity printed on proposals. The most recently
// updated row wins.
type CompanyProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	TaglinePt    string    `json:"taglinePt"`
	TaglineEn    string    `json:"taglineEn"`
	LogoURL      string    `json:"logoUrl"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	Facebook     string    `json:"facebook"`

	AddressStreet     string `json:"addressStreet"`
	AddressCity       string `json:"addressCity"`
	AddressPostalCode string `json:"addressPostalCode"`
	AddressCountry    string `json:"addressCountry"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

func (cp *CompanyProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return
}

// Address renders "street, postal city, country", skipping blank parts.
func (cp CompanyProfile) Address() string {
	var parts []string
	if s := strings.TrimSpace(cp.AddressStreet); s != "" {
		parts = append(parts, s)
	}
	locality := strings.TrimSpace(strings.TrimSpace(cp.AddressPostalCode) + " " + strings.TrimSpace(cp.AddressCity))
	if locality != "" {
		parts = append(parts, locality)
	}
	if s := strings.TrimSpace(cp.AddressCountry); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

type TermsTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ContentPt string    `gorm:"type:text" json:"contentPt"`
	ContentEn string    `gorm:"type:text" json:"contentEn"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *TermsTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
