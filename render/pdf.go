// Package render turns a composed proposal into PDF bytes or an HTML print
// preview. It makes no decisions about content.
package render

import (
	"strings"

	"msilva-backend/document"
	"msilva-backend/pricing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	accent = &props.Color{Red: 120, Green: 94, Blue: 60}
	muted  = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// PDF renders the document as an A4 PDF.
func PDF(doc document.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)
	l := doc.Labels()

	addHeader(m, doc, l)
	addClientBlock(m, doc, l)
	addEventBlock(m, doc, l)

	for _, s := range doc.Sections {
		addHeading(m, s.Title)
		addParagraph(m, s.Body)
	}

	addHeading(m, l.ServicesSelected)
	if len(doc.Services) == 0 {
		m.AddRows(text.NewRow(7, l.NoServices, props.Text{Size: 9, Style: fontstyle.Italic, Color: muted}))
	}
	for _, ln := range doc.Services {
		addLine(m, doc, l, ln)
	}

	if len(doc.OptionalServices) > 0 {
		addHeading(m, l.OptionsPresented)
		for _, ln := range doc.OptionalServices {
			addLine(m, doc, l, ln)
		}
	}

	addTotals(m, doc, l)

	if doc.FooterNotes != "" {
		addHeading(m, l.GeneralTerms)
		addParagraph(m, doc.FooterNotes)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, doc document.Document, l document.Labels) {
	m.AddRow(10,
		text.NewCol(8, doc.CompanyName, props.Text{Size: 16, Style: fontstyle.Bold, Color: accent}),
		text.NewCol(4, l.Eyebrow, props.Text{Size: 9, Align: align.Right, Color: muted, Top: 2}),
	)
	if doc.CompanyTagline != "" {
		m.AddRows(text.NewRow(5, doc.CompanyTagline, props.Text{Size: 9, Style: fontstyle.Italic, Color: muted}))
	}
	contact := joinNonEmpty(" · ", doc.CompanyContact.Phone, doc.CompanyContact.Email, doc.CompanyContact.Website)
	if contact != "" {
		m.AddRows(text.NewRow(5, contact, props.Text{Size: 8, Color: muted}))
	}
	if doc.CompanyContact.Address != "" {
		m.AddRows(text.NewRow(5, doc.CompanyContact.Address, props.Text{Size: 8, Color: muted}))
	}
	m.AddRows(line.NewRow(4, props.Line{Color: accent, Thickness: 0.4}))
	m.AddRows(text.NewRow(10, doc.Title, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center, Top: 2}))
	if doc.GuestBasis != "" {
		m.AddRows(text.NewRow(5, doc.GuestBasis, props.Text{Size: 9, Align: align.Center, Color: muted}))
	}
	m.AddRows(text.NewRow(5, doc.VATNote, props.Text{Size: 8, Align: align.Center, Color: muted}))
}

func addClientBlock(m core.Maroto, doc document.Document, l document.Labels) {
	addHeading(m, l.Client)
	addField(m, l.Name, doc.ClientName)
	addField(m, l.Email, doc.ClientEmail)
	addField(m, l.Phone, doc.ClientPhone)
	addField(m, l.Company, doc.ClientCompany)
	addField(m, l.NIF, doc.ClientNIF)
}

func addEventBlock(m core.Maroto, doc document.Document, l document.Labels) {
	addHeading(m, l.Event)
	addField(m, l.Event, doc.EventType)
	addField(m, l.Title, doc.EventTitle)
	addField(m, l.Date, doc.EventDate)
	addField(m, l.Location, doc.EventLocation)
	addField(m, l.Guests, doc.GuestCount)
}

func addHeading(m core.Maroto, title string) {
	m.AddRows(
		text.NewRow(9, title, props.Text{Size: 11, Style: fontstyle.Bold, Color: accent, Top: 3}),
		line.NewRow(2, props.Line{Color: muted, Thickness: 0.2}),
	)
}

func addField(m core.Maroto, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	m.AddRow(5,
		text.NewCol(3, label, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(9, value, props.Text{Size: 9}),
	)
}

func addParagraph(m core.Maroto, body string) {
	for _, p := range pricing.SplitLines(body) {
		m.AddRows(text.NewRow(5, p, props.Text{Size: 9}))
	}
}

func addLine(m core.Maroto, doc document.Document, l document.Labels, ln document.Line) {
	qty := pricing.QuantityLabel(doc.Language, ln.PricingType, ln.Quantity)
	m.AddRows(row.New(7).Add(
		text.NewCol(6, ln.Name, props.Text{Size: 10, Style: fontstyle.Bold, Top: 1}),
		text.NewCol(2, qty, props.Text{Size: 9, Align: align.Right, Top: 1}),
		text.NewCol(2, pricing.PriceLabel(doc.Language, ln.PricingType, ln.UnitPrice, ln.PriceNote), props.Text{Size: 9, Align: align.Right, Top: 1}),
		text.NewCol(2, lineTotal(doc, ln.TotalPrice, ln.PriceNote), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Top: 1}),
	))
	if len(ln.IncludedItems) > 0 {
		m.AddRows(text.NewRow(5, l.Includes+":", props.Text{Size: 8, Style: fontstyle.Italic, Color: muted, Left: 3}))
		for _, it := range ln.IncludedItems {
			m.AddRows(text.NewRow(4.5, "• "+it, props.Text{Size: 8, Left: 6}))
		}
	}
	if len(ln.Options) > 0 {
		m.AddRows(text.NewRow(5, l.Options+":", props.Text{Size: 8, Style: fontstyle.Italic, Color: muted, Left: 3}))
		for _, o := range ln.Options {
			m.AddRow(4.5,
				text.NewCol(6, "+ "+o.Name, props.Text{Size: 8, Left: 6}),
				text.NewCol(2, pricing.QuantityLabel(doc.Language, o.PricingType, o.Quantity), props.Text{Size: 8, Align: align.Right}),
				text.NewCol(2, pricing.PriceLabel(doc.Language, o.PricingType, o.UnitPrice, o.PriceNote), props.Text{Size: 8, Align: align.Right}),
				text.NewCol(2, lineTotal(doc, o.TotalPrice, o.PriceNote), props.Text{Size: 8, Align: align.Right}),
			)
		}
	}
	m.AddRows(row.New(2))
}

func addTotals(m core.Maroto, doc document.Document, l document.Labels) {
	m.AddRows(line.NewRow(5, props.Line{Color: accent, Thickness: 0.4}))
	m.AddRow(6,
		col.New(6),
		text.NewCol(3, l.Subtotal, props.Text{Size: 10, Align: align.Right}),
		text.NewCol(3, pricing.FormatMoney(doc.Language, doc.Subtotal), props.Text{Size: 10, Align: align.Right}),
	)
	if doc.ShowVAT {
		m.AddRow(6,
			col.New(6),
			text.NewCol(3, l.VAT, props.Text{Size: 10, Align: align.Right}),
			text.NewCol(3, pricing.FormatMoney(doc.Language, doc.VATAmount), props.Text{Size: 10, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, l.Total, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, pricing.FormatMoney(doc.Language, doc.Total), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: accent}),
	)
}

func lineTotal(doc document.Document, total float64, note string) string {
	if note != "" {
		return note
	}
	return pricing.FormatMoney(doc.Language, total)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
