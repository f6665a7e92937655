package render

import (
	"bytes"
	"strings"
	"testing"

	"msilva-backend/document"
	"msilva-backend/models"
)

func sampleDocument(lang models.Language) document.Document {
	return document.Document{
		Language:       lang,
		CompanyName:    "MSilva",
		CompanyContact: document.Contact{Phone: "+351 912 345 678", Address: "Rua A, 1000-001 Lisboa, Portugal"},
		DocumentTitle:  "Proposta_PROP-1_2024-06-01",
		Title:          "PROPOSTA DE ORÇAMENTO - CASAMENTO",
		VATNote:        "Valores apresentados: com IVA",
		ClientName:     "Ana <Costa>",
		EventType:      "Casamento",
		EventDate:      "01/06/2024",
		GuestCount:     "100",
		GuestBasis:     "Orçamento baseado em 100 pessoas",
		Services: []document.Line{
			{
				Name:          "Menu Premium",
				PricingType:   models.PricingPerPerson,
				Quantity:      100,
				UnitPrice:     35,
				TotalPrice:    3500,
				IncludedItems: []string{"Entradas", "Sobremesa"},
				Options:       []document.Option{{Name: "Bolo", PricingType: models.PricingFixed, Quantity: 1, UnitPrice: 80, TotalPrice: 80}},
			},
			{Name: "Decoração", PricingType: models.PricingOnRequest, Quantity: 1, PriceNote: "Sob consulta"},
		},
		OptionalServices: []document.Line{{Name: "DJ", PricingType: models.PricingFixed, Quantity: 1, UnitPrice: 600, TotalPrice: 600}},
		Subtotal:         3580,
		VATAmount:        823.4,
		Total:            4403.4,
		ShowVAT:          true,
		Sections:         []document.Section{{Title: "Enquadramento do Serviço", Body: "Linha 1\nLinha 2"}},
		FooterNotes:      "Sinal de 50%",
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleDocument(models.LangPT))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPDFWithoutServices(t *testing.T) {
	doc := sampleDocument(models.LangEN)
	doc.Services = nil
	doc.OptionalServices = nil
	doc.Sections = nil
	doc.FooterNotes = ""

	out, err := PDF(doc)
	if err != nil || len(out) == 0 {
		t.Fatalf("render failed: %v", err)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleDocument(models.LangPT))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		"PROPOSTA DE ORÇAMENTO - CASAMENTO",
		"Ana &lt;Costa&gt;",
		"Serviços Selecionados",
		"Opções Apresentadas",
		"<li>Entradas</li>",
		"3.500,00 €",
		"35,00 € / pessoa",
		"100 pessoas",
		"Sob consulta",
		"4.403,40 €",
		"Condições Gerais",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("preview missing %q", want)
		}
	}
	if strings.Contains(out, "Ana <Costa>") {
		t.Fatalf("client name was not escaped")
	}
}

func TestHTMLZeroDocument(t *testing.T) {
	out, err := HTML(document.Document{Language: models.LangPT})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "<html") {
		t.Fatalf("expected an html page, got %q", out)
	}
}

func TestHTMLEmptyServices(t *testing.T) {
	doc := sampleDocument(models.LangEN)
	doc.Services = nil
	doc.OptionalServices = nil
	doc.ShowVAT = false

	out, err := HTML(doc)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "No services selected.") || strings.Contains(out, "Options Presented") {
		t.Fatalf("unexpected empty preview")
	}
}
