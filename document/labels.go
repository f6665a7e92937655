package document

import (
	"strconv"
	"strings"

	"msilva-backend/models"
)

// Labels are the fixed strings of a proposal in one language.
type Labels struct {
	Eyebrow          string
	TitlePrefix      string
	Client           string
	Name             string
	Email            string
	Phone            string
	Company          string
	NIF              string
	Event            string
	Title            string
	Date             string
	Location         string
	Guests           string
	Contact          string
	Address          string
	ServicesSelected string
	NoServices       string
	Includes         string
	Options          string
	OptionsPresented string
	Subtotal         string
	VAT              string
	Total            string
	GeneralTerms     string
	ServiceContext   string
	DocumentPrefix   string
	OptionFallback   string
}

var labelsPT = Labels{
	Eyebrow:          "Proposta de Orçamento",
	TitlePrefix:      "PROPOSTA DE ORÇAMENTO",
	Client:           "Cliente",
	Name:             "Nome",
	Email:            "Email",
	Phone:            "Telefone",
	Company:          "Empresa",
	NIF:              "NIF",
	Event:            "Evento",
	Title:            "Título",
	Date:             "Data",
	Location:         "Local",
	Guests:           "Convidados",
	Contact:          "Contacto",
	Address:          "Morada",
	ServicesSelected: "Serviços Selecionados",
	NoServices:       "Nenhum serviço selecionado.",
	Includes:         "Inclui",
	Options:          "Opções",
	OptionsPresented: "Opções Apresentadas",
	Subtotal:         "Subtotal",
	VAT:              "IVA",
	Total:            "Total",
	GeneralTerms:     "Condições Gerais",
	ServiceContext:   "Enquadramento do Serviço",
	DocumentPrefix:   "Proposta",
	OptionFallback:   "Opção",
}

var labelsEN = Labels{
	Eyebrow:          "Quote Proposal",
	TitlePrefix:      "QUOTE PROPOSAL",
	Client:           "Client",
	Name:             "Name",
	Email:            "Email",
	Phone:            "Phone",
	Company:          "Company",
	NIF:              "VAT number",
	Event:            "Event",
	Title:            "Title",
	Date:             "Date",
	Location:         "Location",
	Guests:           "Guests",
	Contact:          "Contact",
	Address:          "Address",
	ServicesSelected: "Selected Services",
	NoServices:       "No services selected.",
	Includes:         "Includes",
	Options:          "Options",
	OptionsPresented: "Options Presented",
	Subtotal:         "Subtotal",
	VAT:              "VAT",
	Total:            "Total",
	GeneralTerms:     "General Terms",
	ServiceContext:   "Service Context",
	DocumentPrefix:   "Proposal",
	OptionFallback:   "Option",
}

func LabelsFor(lang models.Language) Labels {
	if lang == models.LangEN {
		return labelsEN
	}
	return labelsPT
}

// EventTypeLabel localizes an event type. A non-blank custom label wins.
func EventTypeLabel(lang models.Language, eventType models.EventType, custom string) string {
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	en := lang == models.LangEN
	switch eventType {
	case models.EventWedding:
		if en {
			return "Wedding"
		}
		return "Casamento"
	case models.EventCorporate:
		if en {
			return "Corporate"
		}
		return "Empresa"
	case models.EventPrivate:
		if en {
			return "Private"
		}
		return "Privado"
	}
	if en {
		return "Event"
	}
	return "Evento"
}

// CalendarEventLabel is the PT label used for proposal-sourced calendar
// entries and staff schedules.
func CalendarEventLabel(eventType models.EventType, customPt string) string {
	if c := strings.TrimSpace(customPt); c != "" {
		return c
	}
	switch eventType {
	case models.EventWedding:
		return "Casamento"
	case models.EventCorporate:
		return "Evento Corporativo"
	case models.EventPrivate:
		return "Evento Privado"
	}
	return "Evento"
}

// ParseEventType maps free text (PT or EN) onto an event type. Unknown text
// becomes other, and the caller keeps it as the custom label.
func ParseEventType(s string) (models.EventType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return models.EventOther, true
	case models.EventType(v).Valid():
		return models.EventType(v), true
	case strings.Contains(v, "casamento"):
		return models.EventWedding, true
	case strings.Contains(v, "empresa"), strings.Contains(v, "corporat"), strings.Contains(v, "empresarial"):
		return models.EventCorporate, true
	case strings.Contains(v, "privad"):
		return models.EventPrivate, true
	}
	return models.EventOther, false
}

func guestBasis(lang models.Language, guests int) string {
	if guests <= 0 {
		return ""
	}
	if lang == models.LangEN {
		return "Quote based on " + strconv.Itoa(guests) + " guests"
	}
	return "Orçamento baseado em " + strconv.Itoa(guests) + " pessoas"
}

func vatNote(lang models.Language, showVAT bool) string {
	switch {
	case lang == models.LangEN && showVAT:
		return "Values shown: including VAT"
	case lang == models.LangEN:
		return "Values shown: excluding VAT"
	case showVAT:
		return "Valores apresentados: com IVA"
	}
	return "Valores apresentados: sem IVA"
}
