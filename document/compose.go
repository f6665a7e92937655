package document

import (
	"strings"

	"msilva-backend/models"
	"msilva-backend/pricing"
)

// Compose builds the document for a live selection. Entries whose service is
// no longer in the catalog are dropped. Lines follow the selection's manual
// order; the subtotal counts included entries only.
func Compose(sel *pricing.Selection, catalog pricing.Catalog, lang models.Language, h Header, company CompanyInfo) Document {
	doc := frame(lang, h, company, "")
	labels := LabelsFor(lang)

	for _, e := range sel.Ordered() {
		svc, ok := catalog[e.ServiceID]
		if !ok {
			continue
		}
		price := pricing.PriceEntry(svc, e)
		line := Line{
			Name:          svc.Name.In(lang),
			PricingType:   svc.PricingType,
			Quantity:      e.Quantity,
			UnitPrice:     price.UnitPrice,
			TotalPrice:    price.Total,
			IncludedItems: lineItems(lang, e.Notes, svc.IncludedItems),
			PriceNote:     pricing.PriceNote(lang, svc.PricingType, price.UnitPrice, e.CustomPrice != nil),
		}
		for _, o := range e.Options {
			opt, ok := svc.Option(o.OptionID)
			if !ok {
				continue
			}
			op := pricing.PriceOption(opt, o)
			name := opt.Name.In(lang)
			if strings.TrimSpace(name) == "" {
				name = labels.OptionFallback
			}
			line.Options = append(line.Options, Option{
				Name:        name,
				PricingType: opt.PricingType,
				Quantity:    o.Quantity,
				UnitPrice:   op.UnitPrice,
				TotalPrice:  op.Total,
				PriceNote:   pricing.PriceNote(lang, opt.PricingType, op.UnitPrice, o.CustomPrice != nil),
			})
		}
		if e.IncludedInTotal {
			doc.Services = append(doc.Services, line)
		} else {
			doc.OptionalServices = append(doc.OptionalServices, line)
		}
	}

	doc.Subtotal = sel.Subtotal(catalog)
	doc.VATAmount, doc.Total = pricing.VAT(doc.Subtotal, h.VATRate, h.ShowVAT)
	return doc
}

// lineItems resolves what a line includes: its own notes first, then the
// catalog list.
func lineItems(lang models.Language, notes string, catalogItems []pricing.Text) []string {
	if lines := pricing.SplitLines(notes); len(lines) > 0 {
		return lines
	}
	out := make([]string, 0, len(catalogItems))
	for _, it := range catalogItems {
		if s := strings.TrimSpace(it.In(lang)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
