// Package document assembles the language-specific proposal document that
// renderers consume, both from a live selection and from stored rows.
package document

import (
	"strconv"
	"strings"

	"msilva-backend/models"
	"msilva-backend/pricing"
	"msilva-backend/utils"
)

type Option struct {
	Name        string             `json:"name"`
	PricingType models.PricingType `json:"pricingType"`
	Quantity    int                `json:"quantity"`
	UnitPrice   float64            `json:"unitPrice"`
	TotalPrice  float64            `json:"totalPrice"`
	PriceNote   string             `json:"priceNote,omitempty"`
}

type Line struct {
	Name          string             `json:"name"`
	PricingType   models.PricingType `json:"pricingType"`
	Quantity      int                `json:"quantity"`
	UnitPrice     float64            `json:"unitPrice"`
	TotalPrice    float64            `json:"totalPrice"`
	IncludedItems []string           `json:"includedItems,omitempty"`
	Options       []Option           `json:"options,omitempty"`
	PriceNote     string             `json:"priceNote,omitempty"`
}

type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Contact struct {
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Document is the composed proposal. Services count toward the subtotal;
// OptionalServices are presented only.
type Document struct {
	Language       models.Language `json:"language"`
	CompanyName    string          `json:"companyName"`
	CompanyTagline string          `json:"companyTagline,omitempty"`
	CompanyLogoURL string          `json:"companyLogoUrl,omitempty"`
	CompanyContact Contact         `json:"companyContact"`
	DocumentTitle  string          `json:"documentTitle"`
	Title          string          `json:"title"`
	VATNote        string          `json:"vatNote"`

	ClientName    string `json:"clientName,omitempty"`
	ClientEmail   string `json:"clientEmail,omitempty"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientCompany string `json:"clientCompany,omitempty"`
	ClientNIF     string `json:"clientNif,omitempty"`

	EventTitle    string `json:"eventTitle,omitempty"`
	EventType     string `json:"eventType,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	GuestCount    string `json:"guestCount,omitempty"`
	GuestBasis    string `json:"guestBasis,omitempty"`

	Services         []Line `json:"services"`
	OptionalServices []Line `json:"optionalServices"`

	Subtotal  float64 `json:"subtotal"`
	VATAmount float64 `json:"vatAmount"`
	Total     float64 `json:"total"`
	ShowVAT   bool    `json:"showVat"`

	Sections    []Section `json:"sections"`
	FooterNotes string    `json:"footerNotes,omitempty"`
}

func (d Document) Labels() Labels {
	return LabelsFor(d.Language)
}

// Filename is the sanitized document title.
func (d Document) Filename() string {
	return SanitizeFilename(d.DocumentTitle) + ".pdf"
}

// ClientInfo is the client snapshot copied into a proposal.
type ClientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	NIF     string `json:"nif"`
}

type EventInfo struct {
	Type          models.EventType `json:"type"`
	CustomLabelPT string           `json:"customLabelPt"`
	CustomLabelEN string           `json:"customLabelEn"`
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	Location      string           `json:"location"`
	GuestCount    int              `json:"guestCount"`
	Notes         string           `json:"notes"`
}

func (e EventInfo) customLabel(lang models.Language) string {
	return pricing.Text{PT: e.CustomLabelPT, EN: e.CustomLabelEN}.In(lang)
}

// Content is the free text of a proposal.
type Content struct {
	IntroPT string `json:"introPt"`
	IntroEN string `json:"introEn"`
	TermsPT string `json:"termsPt"`
	TermsEN string `json:"termsEn"`
}

// Header is everything about a proposal except its lines.
type Header struct {
	Reference string                `json:"reference"`
	Status    models.ProposalStatus `json:"status"`
	Client    ClientInfo            `json:"client"`
	Event     EventInfo             `json:"event"`
	ShowVAT   bool                  `json:"showVat"`
	VATRate   float64               `json:"vatRate"`
	Content   Content               `json:"content"`
}

// CompanyInfo is the printable company identity.
type CompanyInfo struct {
	Name    string
	Tagline pricing.Text
	LogoURL string
	Contact Contact
}

// CompanyFromProfile maps the stored profile. A nil profile gives the
// default company name only.
func CompanyFromProfile(p *models.CompanyProfile) CompanyInfo {
	if p == nil {
		return CompanyInfo{Name: models.DefaultCompanyName}
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = models.DefaultCompanyName
	}
	return CompanyInfo{
		Name:    name,
		Tagline: pricing.Text{PT: p.TaglinePt, EN: p.TaglineEn},
		LogoURL: p.LogoURL,
		Contact: Contact{
			Phone:     p.ContactPhone,
			Email:     p.ContactEmail,
			Website:   p.Website,
			Instagram: p.Instagram,
			Facebook:  p.Facebook,
			Address:   p.Address(),
		},
	}
}

// frame fills everything that does not depend on the lines.
func frame(lang models.Language, h Header, company CompanyInfo, fallbackID string) Document {
	labels := LabelsFor(lang)
	typeLabel := EventTypeLabel(lang, h.Event.Type, h.Event.customLabel(lang))
	titleBase := strings.TrimSpace(h.Event.Title)
	if titleBase == "" {
		titleBase = typeLabel
	}

	doc := Document{
		Language:       lang,
		CompanyName:    company.Name,
		CompanyTagline: company.Tagline.In(lang),
		CompanyLogoURL: company.LogoURL,
		CompanyContact: company.Contact,
		Title:          labels.TitlePrefix + " - " + strings.ToUpper(titleBase),
		VATNote:        vatNote(lang, h.ShowVAT),
		ClientName:     h.Client.Name,
		ClientEmail:    h.Client.Email,
		ClientPhone:    h.Client.Phone,
		ClientCompany:  h.Client.Company,
		ClientNIF:      h.Client.NIF,
		EventTitle:     h.Event.Title,
		EventType:      typeLabel,
		EventDate:      utils.DisplayDate(h.Event.Date),
		EventLocation:  h.Event.Location,
		GuestBasis:     guestBasis(lang, h.Event.GuestCount),
		ShowVAT:        h.ShowVAT,
		Services:       []Line{},
		Sections:       []Section{},

		OptionalServices: []Line{},
	}
	if h.Event.GuestCount > 0 {
		doc.GuestCount = strconv.Itoa(h.Event.GuestCount)
	}

	ref := strings.TrimSpace(h.Reference)
	if ref == "" {
		ref = fallbackID
	}
	parts := []string{labels.DocumentPrefix}
	if ref != "" {
		parts = append(parts, ref)
	}
	if h.Event.Date != "" {
		parts = append(parts, h.Event.Date)
	}
	doc.DocumentTitle = SanitizeFilename(strings.Join(parts, "_"))

	intro := pricing.Text{PT: h.Content.IntroPT, EN: h.Content.IntroEN}.In(lang)
	if strings.TrimSpace(intro) != "" {
		doc.Sections = append(doc.Sections, Section{Title: labels.ServiceContext, Body: intro})
	}
	doc.FooterNotes = strings.TrimSpace(pricing.Text{PT: h.Content.TermsPT, EN: h.Content.TermsEN}.In(lang))
	return doc
}

// SanitizeFilename replaces path separators with dashes and drops quotes.
func SanitizeFilename(s string) string {
	return strings.NewReplacer("/", "-", `\`, "-", `"`, "").Replace(s)
}
