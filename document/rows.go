package document

import (
	"sort"
	"strings"

	"msilva-backend/models"
	"msilva-backend/pricing"

	"github.com/google/uuid"
)

// ToRows snapshots a live selection into a proposal with nested lines and
// options, ready to be created in a single insert. Every id is assigned here
// so children reference their parent without a second pass.
func ToRows(sel *pricing.Selection, catalog pricing.Catalog, h Header, lang models.Language) models.Proposal {
	status := h.Status
	if status == "" {
		status = models.ProposalDraft
	}
	eventType := h.Event.Type
	if eventType == "" {
		eventType = models.EventOther
	}

	p := models.Proposal{
		ID:                uuid.New(),
		Status:            status,
		ReferenceNumber:   h.Reference,
		ClientName:        strings.TrimSpace(h.Client.Name),
		ClientEmail:       optional(h.Client.Email),
		ClientPhone:       optional(h.Client.Phone),
		ClientCompany:     optional(h.Client.Company),
		ClientNIF:         optional(h.Client.NIF),
		EventType:         eventType,
		EventTypeCustomPt: optional(h.Event.CustomLabelPT),
		EventTypeCustomEn: optional(h.Event.CustomLabelEN),
		EventTitle:        optional(h.Event.Title),
		EventDate:         optional(h.Event.Date),
		EventLocation:     optional(h.Event.Location),
		GuestCount:        h.Event.GuestCount,
		EventNotes:        optional(h.Event.Notes),
		Language:          lang,
		ShowVAT:           h.ShowVAT,
		VATRate:           h.VATRate,
		IntroPt:           optional(h.Content.IntroPT),
		IntroEn:           optional(h.Content.IntroEN),
		TermsPt:           optional(h.Content.TermsPT),
		TermsEn:           optional(h.Content.TermsEN),
	}

	for _, e := range sel.Ordered() {
		svc, ok := catalog[e.ServiceID]
		if !ok {
			continue
		}
		price := pricing.PriceEntry(svc, e)
		serviceID := svc.ID
		ps := models.ProposalService{
			ID:              uuid.New(),
			ProposalID:      p.ID,
			ServiceID:       &serviceID,
			ServiceNamePt:   svc.Name.PT,
			ServiceNameEn:   svc.Name.EN,
			PricingType:     svc.PricingType,
			Quantity:        e.Quantity,
			UnitPrice:       price.UnitPrice,
			CustomPrice:     e.CustomPrice,
			TotalPrice:      price.Total,
			Notes:           optional(e.Notes),
			IncludedInTotal: e.IncludedInTotal,
			SortOrder:       len(p.Services) + 1,
		}
		for _, o := range e.Options {
			opt, ok := svc.Option(o.OptionID)
			if !ok {
				continue
			}
			op := pricing.PriceOption(opt, o)
			optionID := opt.ID
			ps.Options = append(ps.Options, models.ProposalServiceOption{
				ID:                uuid.New(),
				ProposalServiceID: ps.ID,
				OptionID:          &optionID,
				OptionNamePt:      opt.Name.PT,
				OptionNameEn:      opt.Name.EN,
				PricingType:       opt.PricingType,
				Quantity:          o.Quantity,
				UnitPrice:         op.UnitPrice,
				TotalPrice:        op.Total,
				Notes:             optional(o.Notes),
				SortOrder:         len(ps.Options) + 1,
			})
		}
		p.Services = append(p.Services, ps)
	}

	p.Subtotal = sel.Subtotal(catalog)
	p.VATAmount, p.Total = pricing.VAT(p.Subtotal, p.VATRate, p.ShowVAT)
	return p
}

// HeaderFromProposal reads the snapshot fields back off a stored proposal.
func HeaderFromProposal(p models.Proposal) Header {
	return Header{
		Reference: p.ReferenceNumber,
		Status:    p.Status,
		Client: ClientInfo{
			Name:    p.ClientName,
			Email:   deref(p.ClientEmail),
			Phone:   deref(p.ClientPhone),
			Company: deref(p.ClientCompany),
			NIF:     deref(p.ClientNIF),
		},
		Event: EventInfo{
			Type:          p.EventType,
			CustomLabelPT: deref(p.EventTypeCustomPt),
			CustomLabelEN: deref(p.EventTypeCustomEn),
			Title:         deref(p.EventTitle),
			Date:          deref(p.EventDate),
			Location:      deref(p.EventLocation),
			GuestCount:    p.GuestCount,
			Notes:         deref(p.EventNotes),
		},
		ShowVAT: p.ShowVAT,
		VATRate: p.VATRate,
		Content: Content{
			IntroPT: deref(p.IntroPt),
			IntroEN: deref(p.IntroEn),
			TermsPT: deref(p.TermsPt),
			TermsEN: deref(p.TermsEn),
		},
	}
}

// FromRows rebuilds the document of a stored proposal in the requested
// language. Stored prices and totals are used as they are.
func FromRows(
	p models.Proposal,
	services []models.ProposalService,
	options []models.ProposalServiceOption,
	included []models.ServiceIncludedItem,
	company CompanyInfo,
	lang models.Language,
) Document {
	doc := frame(lang, HeaderFromProposal(p), company, p.ID.String())
	labels := LabelsFor(lang)

	optionsByLine := make(map[uuid.UUID][]models.ProposalServiceOption)
	for _, o := range options {
		optionsByLine[o.ProposalServiceID] = append(optionsByLine[o.ProposalServiceID], o)
	}
	itemsByService := make(map[uuid.UUID][]models.ServiceIncludedItem)
	for _, it := range included {
		itemsByService[it.ServiceID] = append(itemsByService[it.ServiceID], it)
	}

	rows := append([]models.ProposalService(nil), services...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })

	for _, ps := range rows {
		pt := ps.PricingType
		if pt == "" {
			pt = models.PricingFixed
		}
		var catalogItems []pricing.Text
		if ps.ServiceID != nil {
			items := itemsByService[*ps.ServiceID]
			sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
			for _, it := range items {
				catalogItems = append(catalogItems, pricing.Text{PT: it.TextPt, EN: it.TextEn})
			}
		}
		line := Line{
			Name:          pricing.Text{PT: ps.ServiceNamePt, EN: ps.ServiceNameEn}.In(lang),
			PricingType:   pt,
			Quantity:      ps.Quantity,
			UnitPrice:     ps.UnitPrice,
			TotalPrice:    ps.TotalPrice,
			IncludedItems: lineItems(lang, deref(ps.Notes), catalogItems),
			PriceNote:     pricing.PriceNote(lang, pt, ps.UnitPrice, ps.CustomPrice != nil),
		}

		opts := optionsByLine[ps.ID]
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].SortOrder < opts[j].SortOrder })
		for _, o := range opts {
			opt := o.PricingType
			if opt == "" {
				opt = models.PricingFixed
			}
			name := pricing.Text{PT: o.OptionNamePt, EN: o.OptionNameEn}.In(lang)
			if strings.TrimSpace(name) == "" {
				name = labels.OptionFallback
			}
			line.Options = append(line.Options, Option{
				Name:        name,
				PricingType: opt,
				Quantity:    o.Quantity,
				UnitPrice:   o.UnitPrice,
				TotalPrice:  o.TotalPrice,
				PriceNote:   pricing.PriceNote(lang, opt, o.UnitPrice, false),
			})
		}

		if ps.IncludedInTotal {
			doc.Services = append(doc.Services, line)
		} else {
			doc.OptionalServices = append(doc.OptionalServices, line)
		}
	}

	doc.Subtotal = p.Subtotal
	if doc.Subtotal == 0 {
		doc.Subtotal = p.Total
	}
	doc.VATAmount = p.VATAmount
	doc.Total = p.Total
	return doc
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
