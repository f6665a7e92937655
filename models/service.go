package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingType string

const (
	PricingPerPerson PricingType = "per_person"
	PricingFixed     PricingType = "fixed"
	PricingOnRequest PricingType = "on_request"
)

func (p PricingType) Valid() bool {
	switch p {
	case PricingPerPerson, PricingFixed, PricingOnRequest:
		return true
	}
	return false
}

type Category struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NamePt        string    `gorm:"not null" json:"namePt"`
	NameEn        string    `json:"nameEn"`
	DescriptionPt string    `gorm:"type:text" json:"descriptionPt"`
	DescriptionEn string    `gorm:"type:text" json:"descriptionEn"`
	Icon          string    `json:"icon"`
	SortOrder     int       `gorm:"index" json:"sortOrder"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (cat *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	return
}

// Service is a catalog entry. BasePrice may be nil only for on_request
// services.
type Service struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	NamePt        string `gorm:"not null" json:"namePt"`
	NameEn        string `json:"nameEn"`
	DescriptionPt string `gorm:"type:text" json:"descriptionPt"`
	DescriptionEn string `gorm:"type:text" json:"descriptionEn"`

	PricingType PricingType `gorm:"type:varchar(20);not null" json:"pricingType"`
	BasePrice   *float64    `gorm:"type:decimal(10,2)" json:"basePrice"`
	UnitPt      string      `json:"unitPt"`
	UnitEn      string      `json:"unitEn"`
	MinQuantity *int        `json:"minQuantity"`
	MaxQuantity *int        `json:"maxQuantity"`

	Tags datatypes.JSONSlice[string] `json:"tags"`

	// newline-delimited included items, used when no explicit rows exist
	IncludedItemsPt string `gorm:"type:text" json:"includedItemsPt"`
	IncludedItemsEn string `gorm:"type:text" json:"includedItemsEn"`

	SortOrder int  `gorm:"index" json:"sortOrder"`
	IsActive  bool `json:"isActive"`

	IncludedItems []ServiceIncludedItem `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"includedItems"`
	PricedOptions []ServicePricedOption `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"pricedOptions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type ServiceIncludedItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	SectionKey string    `json:"sectionKey"`
	TextPt     string    `gorm:"type:text;not null" json:"textPt"`
	TextEn     string    `gorm:"type:text" json:"textEn"`
	SortOrder  int       `json:"sortOrder"`
}

func (i *ServiceIncludedItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type ServicePricedOption struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"serviceId"`
	NamePt        string      `gorm:"not null" json:"namePt"`
	NameEn        string      `json:"nameEn"`
	DescriptionPt string      `gorm:"type:text" json:"descriptionPt"`
	DescriptionEn string      `gorm:"type:text" json:"descriptionEn"`
	PricingType   PricingType `gorm:"type:varchar(20);not null" json:"pricingType"`
	Price         *float64    `gorm:"type:decimal(10,2)" json:"price"`
	MinQuantity   *int        `json:"minQuantity"`
	SortOrder     int         `json:"sortOrder"`
}

func (o *ServicePricedOption) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
