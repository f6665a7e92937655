package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalDraft     ProposalStatus = "draft"
	ProposalSent      ProposalStatus = "sent"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalCancelled ProposalStatus = "cancelled"
)

// Editable reports whether the status may be set directly by callers.
// cancelled is reachable only through the cancel action.
func (s ProposalStatus) Editable() bool {
	switch s {
	case ProposalDraft, ProposalSent, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

type EventType string

const (
	EventWedding   EventType = "wedding"
	EventCorporate EventType = "corporate"
	EventPrivate   EventType = "private"
	EventOther     EventType = "other"
)

func (e EventType) Valid() bool {
	switch e {
	case EventWedding, EventCorporate, EventPrivate, EventOther:
		return true
	}
	return false
}

type Language string

const (
	LangPT Language = "pt"
	LangEN Language = "en"
)

// ParseLanguage returns en only when asked for explicitly.
func ParseLanguage(s string) Language {
	if s == string(LangEN) {
		return LangEN
	}
	return LangPT
}

// Proposal is a priced quote. Client and event fields are snapshots and the
// stored totals are authoritative once written.
type Proposal struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Status          ProposalStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ReferenceNumber string         `gorm:"uniqueIndex;not null" json:"referenceNumber"`

	ClientName    string  `gorm:"not null" json:"clientName"`
	ClientEmail   *string `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone"`
	ClientCompany *string `json:"clientCompany"`
	ClientNIF     *string `gorm:"column:client_nif" json:"clientNif"`

	EventType         EventType `gorm:"type:varchar(20);not null" json:"eventType"`
	EventTypeCustomPt *string   `json:"eventTypeCustomPt"`
	EventTypeCustomEn *string   `json:"eventTypeCustomEn"`
	EventTitle        *string   `json:"eventTitle"`
	EventDate         *string   `gorm:"type:varchar(10);index" json:"eventDate"`
	EventLocation     *string   `json:"eventLocation"`
	GuestCount        int       `json:"guestCount"`
	EventNotes        *string   `gorm:"type:text" json:"eventNotes"`

	Language  Language `gorm:"type:varchar(2);not null" json:"language"`
	ShowVAT   bool     `gorm:"column:show_vat" json:"showVat"`
	VATRate   float64  `gorm:"column:vat_rate;type:decimal(5,2)" json:"vatRate"`
	Subtotal  float64  `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	VATAmount float64  `gorm:"column:vat_amount;type:decimal(10,2)" json:"vatAmount"`
	Total     float64  `gorm:"type:decimal(10,2);not null" json:"total"`

	IntroPt *string `gorm:"type:text" json:"introPt"`
	IntroEn *string `gorm:"type:text" json:"introEn"`
	TermsPt *string `gorm:"type:text" json:"termsPt"`
	TermsEn *string `gorm:"type:text" json:"termsEn"`

	SentAt    *time.Time `json:"sentAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Services []ProposalService `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ProposalService is one priced line. ServiceID survives catalog deletion as
// a dangling reference; every display field is a snapshot.
type ProposalService struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"proposalId"`
	ServiceID     *uuid.UUID  `gorm:"type:uuid;index" json:"serviceId"`
	ServiceNamePt string      `gorm:"not null" json:"serviceNamePt"`
	ServiceNameEn string      `json:"serviceNameEn"`
	PricingType   PricingType `gorm:"type:varchar(20);not null" json:"pricingType"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	UnitPrice     float64     `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	CustomPrice   *float64    `gorm:"type:decimal(10,2)" json:"customPrice"`
	TotalPrice    float64     `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Notes         *string     `gorm:"type:text" json:"notes"`

	IncludedInTotal bool `gorm:"not null" json:"includedInTotal"`
	SortOrder       int  `gorm:"not null" json:"sortOrder"`

	Options []ProposalServiceOption `gorm:"foreignKey:ProposalServiceID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (ps *ProposalService) BeforeCreate(tx *gorm.DB) (err error) {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return
}

type ProposalServiceOption struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalServiceID uuid.UUID   `gorm:"type:uuid;index;not null" json:"proposalServiceId"`
	OptionID          *uuid.UUID  `gorm:"type:uuid" json:"optionId"`
	OptionNamePt      string      `json:"optionNamePt"`
	OptionNameEn      string      `json:"optionNameEn"`
	PricingType       PricingType `gorm:"type:varchar(20)" json:"pricingType"`
	Quantity          int         `gorm:"not null" json:"quantity"`
	UnitPrice         float64     `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice        float64     `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Notes             *string     `gorm:"type:text" json:"notes"`
	SortOrder         int         `json:"sortOrder"`
}

func (o *ProposalServiceOption) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
