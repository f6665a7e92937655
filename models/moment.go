package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProposalMoment is a point in an event's menu (welcome drinks, dinner,
// late snack) grouping catalog items.
type ProposalMoment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	TitlePt   string    `gorm:"not null" json:"titlePt"`
	TitleEn   string    `json:"titleEn"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`

	Items []MomentItem `gorm:"foreignKey:MomentID;constraint:OnDelete:CASCADE" json:"items"`
}

func (m *ProposalMoment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

type CatalogItem struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	NamePt        string                      `gorm:"not null" json:"namePt"`
	NameEn        string                      `json:"nameEn"`
	DescriptionPt string                      `gorm:"type:text" json:"descriptionPt"`
	DescriptionEn string                      `gorm:"type:text" json:"descriptionEn"`
	PricingType   PricingType                 `gorm:"type:varchar(20);not null" json:"pricingType"`
	BasePrice     *float64                    `gorm:"type:decimal(10,2)" json:"basePrice"`
	UnitPt        string                      `json:"unitPt"`
	UnitEn        string                      `json:"unitEn"`
	MinQuantity   *int                        `json:"minQuantity"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	SortOrder     int                         `json:"sortOrder"`
	IsActive      bool                        `json:"isActive"`
}

func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return
}

type MomentItem struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MomentID  uuid.UUID    `gorm:"type:uuid;index;not null" json:"momentId"`
	ItemID    uuid.UUID    `gorm:"type:uuid;index;not null" json:"itemId"`
	Item      *CatalogItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	IsDefault bool         `json:"isDefault"`
	SortOrder int          `json:"sortOrder"`
}

func (mi *MomentItem) BeforeCreate(tx *gorm.DB) (err error) {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return
}
