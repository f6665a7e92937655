package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"msilva-backend/document"
	"msilva-backend/models"
)

func selectionFor(c testCatalog) SelectionInput {
	return SelectionInput{
		Reference: "PROP-TEST-1",
		Client:    document.ClientInfo{Name: "Ana Costa", NIF: "501 964 843"},
		Event: document.EventInfo{
			Type:       models.EventWedding,
			Date:       "2025-09-20",
			Location:   "Quinta da Aveleda",
			GuestCount: 80,
		},
		ShowVAT: true,
		Lines: []SelectionLineInput{
			{ServiceID: c.menu.ID, Options: []SelectionOptionInput{{OptionID: c.wine.ID}}},
			{ServiceID: c.dj.ID},
			{ServiceID: c.decor.ID, IncludedInTotal: boolPtr(false)},
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func TestCreateFromSelectionStoresPricedRows(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	svc := NewProposalService(db, 23)

	p, err := svc.CreateFromSelection(context.Background(), selectionFor(c))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Subtotal != 3800 || p.VATAmount != 874 || p.Total != 4674 {
		t.Fatalf("unexpected totals %v %v %v", p.Subtotal, p.VATAmount, p.Total)
	}
	if p.ClientNIF == nil || *p.ClientNIF != "501964843" {
		t.Fatalf("expected normalized nif, got %v", p.ClientNIF)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Services) != 3 {
		t.Fatalf("expected 3 stored lines, got %d", len(got.Services))
	}
	menu := got.Services[0]
	if menu.ServiceNamePt != "Menu Premium" || menu.Quantity != 80 || menu.TotalPrice != 2800 || menu.SortOrder != 1 {
		t.Fatalf("unexpected menu row %+v", menu)
	}
	if len(menu.Options) != 1 || menu.Options[0].ProposalServiceID != menu.ID || menu.Options[0].TotalPrice != 400 {
		t.Fatalf("option not attached to its line: %+v", menu.Options)
	}
	if got.Services[2].IncludedInTotal {
		t.Fatal("presented line should be stored outside the total")
	}
	if len(got.IncludedItems) != 2 {
		t.Fatalf("expected catalog included items, got %d", len(got.IncludedItems))
	}
}

func TestSaveIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	svc := NewProposalService(db, 23)

	if _, err := svc.CreateFromSelection(context.Background(), selectionFor(c)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// same reference number violates the unique index
	if _, err := svc.CreateFromSelection(context.Background(), selectionFor(c)); err == nil {
		t.Fatal("expected duplicate reference to fail")
	}

	var proposals, lines, options int64
	db.Model(&models.Proposal{}).Count(&proposals)
	db.Model(&models.ProposalService{}).Count(&lines)
	db.Model(&models.ProposalServiceOption{}).Count(&options)
	if proposals != 1 || lines != 3 || options != 1 {
		t.Fatalf("partial write survived: %d proposals, %d lines, %d options", proposals, lines, options)
	}
}

func TestCreateResolvesOptionsByServiceIndex(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	svc := NewProposalService(db, 23)

	in := CreateProposalInput{
		ClientName: "Rui",
		EventType:  "Batizado",
		Language:   "en",
		Subtotal:   1000,
		Total:      1000,
		Services: []ProposalLineInput{
			{ServiceNamePt: "Menu", PricingType: models.PricingPerPerson, Quantity: 20, UnitPrice: 40, TotalPrice: 800},
			{ServiceNamePt: "DJ", Quantity: 1, UnitPrice: 200, TotalPrice: 200},
		},
		Options: []ProposalOptionInput{
			{ServiceIndex: 0, OptionID: &c.wine.ID, Quantity: 20, UnitPrice: 5, TotalPrice: 100},
			{ServiceIndex: 7, OptionNamePt: "Perdido", Quantity: 1},
		},
	}
	p, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != models.ProposalDraft || p.Language != models.LangEN {
		t.Fatalf("unexpected defaults %s %s", p.Status, p.Language)
	}
	if p.EventType != models.EventOther || p.EventTypeCustomPt == nil || *p.EventTypeCustomPt != "Batizado" {
		t.Fatalf("unknown event type should become a custom label, got %s %v", p.EventType, p.EventTypeCustomPt)
	}
	if p.VATRate != 23 {
		t.Fatalf("expected default vat rate, got %v", p.VATRate)
	}
	if !strings.HasPrefix(p.ReferenceNumber, "PROP-") {
		t.Fatalf("expected generated reference, got %q", p.ReferenceNumber)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Services[1].PricingType != models.PricingFixed || got.Services[1].SortOrder != 2 {
		t.Fatalf("unexpected second line %+v", got.Services[1])
	}
	opts := got.Services[0].Options
	if len(opts) != 1 || opts[0].OptionNamePt != "Vinho" || opts[0].PricingType != models.PricingPerPerson {
		t.Fatalf("expected one option snapshotted from the catalog, got %+v", opts)
	}
	if len(got.Services[1].Options) != 0 {
		t.Fatal("option with unknown index should be dropped")
	}
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProposalService(db, 23)

	cases := map[string]CreateProposalInput{
		"missing client": {},
		"bad nif":        {ClientName: "Ana", ClientNIF: "123456780"},
		"bad date":       {ClientName: "Ana", EventDate: "20/09/2025"},
		"bad vat":        {ClientName: "Ana", VATRate: ptrFloat(130)},
		"bad pricing":    {ClientName: "Ana", Services: []ProposalLineInput{{ServiceNamePt: "X", PricingType: "hourly"}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPatchRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewProposalService(db, 23)
	p, err := svc.Create(context.Background(), CreateProposalInput{ClientName: "Ana"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Patch(context.Background(), p.ID, "cancelled", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.Patch(context.Background(), p.ID, "", "fr"); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
	updated, err := svc.Patch(context.Background(), p.ID, "sent", "en")
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.Status != models.ProposalSent || updated.Language != models.LangEN {
		t.Fatalf("unexpected patch result %s %s", updated.Status, updated.Language)
	}
}

func TestMarkAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewProposalService(db, 23)
	p, _ := svc.Create(context.Background(), CreateProposalInput{ClientName: "Ana"})

	got, err := svc.MarkAccepted(context.Background(), p.ID)
	if err != nil || got.Status != models.ProposalAccepted {
		t.Fatalf("expected accepted, got %v %v", got, err)
	}

	db.Model(&models.Proposal{}).Where("id = ?", p.ID).Update("status", models.ProposalCancelled)
	if _, err := svc.MarkAccepted(context.Background(), p.ID); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("cancelled proposal must stay cancelled, got %v", err)
	}
}

func TestGeneratePDF(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	svc := NewProposalService(db, 23)
	svc.now = fixedClock(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	p, err := svc.CreateFromSelection(context.Background(), selectionFor(c))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.GeneratePDF(context.Background(), p.ID, models.LangEN)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(res.Bytes, []byte("%PDF")) {
		t.Fatal("expected pdf bytes")
	}
	if res.Filename != "Proposal_PROP-TEST-1_2025-09-20.pdf" {
		t.Fatalf("unexpected filename %q", res.Filename)
	}

	var stored models.Proposal
	db.First(&stored, "id = ?", p.ID)
	if stored.Status != models.ProposalSent || stored.SentAt == nil || stored.Language != models.LangEN {
		t.Fatalf("expected sent with language stamped, got %s %v %s", stored.Status, stored.SentAt, stored.Language)
	}

	db.Model(&stored).Update("status", models.ProposalAccepted)
	if _, err := svc.GeneratePDF(context.Background(), p.ID, models.LangPT); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	db.First(&stored, "id = ?", p.ID)
	if stored.Status != models.ProposalAccepted || stored.Language != models.LangPT {
		t.Fatalf("accepted proposal must not be downgraded, got %s %s", stored.Status, stored.Language)
	}
}

func TestRenderDocumentUsesStoredNumbers(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	svc := NewProposalService(db, 23)
	p, err := svc.CreateFromSelection(context.Background(), selectionFor(c))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// catalog price changes never reach a stored proposal
	db.Model(&models.Service{}).Where("id = ?", c.menu.ID).Update("base_price", 99)

	doc, err := svc.RenderDocument(context.Background(), p.ID, models.LangPT)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Subtotal != 3800 || doc.Total != 4674 {
		t.Fatalf("expected frozen totals, got %v %v", doc.Subtotal, doc.Total)
	}
	if len(doc.Services) != 2 || len(doc.OptionalServices) != 1 {
		t.Fatalf("unexpected split %d/%d", len(doc.Services), len(doc.OptionalServices))
	}
	if doc.CompanyName != models.DefaultCompanyName {
		t.Fatalf("expected default company name, got %q", doc.CompanyName)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewProposalService(db, 23)
	svc.Create(context.Background(), CreateProposalInput{ClientName: "A"})
	svc.Create(context.Background(), CreateProposalInput{ClientName: "B", Status: "sent"})

	sent, err := svc.List(context.Background(), "sent")
	if err != nil || len(sent) != 1 || sent[0].ClientName != "B" {
		t.Fatalf("unexpected filtered list %v %v", sent, err)
	}
	if _, err := svc.List(context.Background(), "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
