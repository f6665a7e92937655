package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"msilva-backend/config"
	"msilva-backend/document"
	"msilva-backend/models"
	"msilva-backend/pricing"
	"msilva-backend/render"
	"msilva-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProposalService struct {
	db             *gorm.DB
	defaultVATRate float64
	now            func() time.Time
}

func NewProposalService(db *gorm.DB, defaultVATRate float64) *ProposalService {
	return &ProposalService{db: db, defaultVATRate: defaultVATRate, now: time.Now}
}

// ProposalLineInput is one line priced by the caller.
type ProposalLineInput struct {
	ServiceID       *uuid.UUID         `json:"serviceId"`
	ServiceNamePt   string             `json:"serviceNamePt"`
	ServiceNameEn   string             `json:"serviceNameEn"`
	PricingType     models.PricingType `json:"pricingType"`
	Quantity        int                `json:"quantity"`
	UnitPrice       float64            `json:"unitPrice"`
	CustomPrice     *float64           `json:"customPrice"`
	TotalPrice      float64            `json:"totalPrice"`
	Notes           string             `json:"notes"`
	IncludedInTotal *bool              `json:"includedInTotal"`
	SortOrder       *int               `json:"sortOrder"`
}

// ProposalOptionInput points at its line by position in Services.
type ProposalOptionInput struct {
	ServiceIndex int                `json:"serviceIndex"`
	OptionID     *uuid.UUID         `json:"optionId"`
	OptionNamePt string             `json:"optionNamePt"`
	OptionNameEn string             `json:"optionNameEn"`
	PricingType  models.PricingType `json:"pricingType"`
	Quantity     int                `json:"quantity"`
	UnitPrice    float64            `json:"unitPrice"`
	TotalPrice   float64            `json:"totalPrice"`
	Notes        string             `json:"notes"`
	SortOrder    *int               `json:"sortOrder"`
}

// CreateProposalInput carries a proposal whose totals were computed by the
// caller. The totals are stored as sent.
type CreateProposalInput struct {
	ReferenceNumber string `json:"referenceNumber"`
	Status          string `json:"status"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ClientCompany string `json:"clientCompany"`
	ClientNIF     string `json:"clientNif"`

	EventType         string `json:"eventType"`
	EventTypeCustomPt string `json:"eventTypeCustomPt"`
	EventTypeCustomEn string `json:"eventTypeCustomEn"`
	EventTitle        string `json:"eventTitle"`
	EventDate         string `json:"eventDate"`
	EventLocation     string `json:"eventLocation"`
	GuestCount        int    `json:"guestCount"`
	EventNotes        string `json:"eventNotes"`

	Language  string   `json:"language"`
	ShowVAT   bool     `json:"showVat"`
	VATRate   *float64 `json:"vatRate"`
	Subtotal  float64  `json:"subtotal"`
	VATAmount float64  `json:"vatAmount"`
	Total     float64  `json:"total"`

	IntroPt string `json:"introPt"`
	IntroEn string `json:"introEn"`
	TermsPt string `json:"termsPt"`
	TermsEn string `json:"termsEn"`

	Services []ProposalLineInput   `json:"services"`
	Options  []ProposalOptionInput `json:"options"`
}

func (in CreateProposalInput) header() document.Header {
	return document.Header{
		Reference: in.ReferenceNumber,
		Status:    models.ProposalStatus(in.Status),
		Client: document.ClientInfo{
			Name:    in.ClientName,
			Email:   in.ClientEmail,
			Phone:   in.ClientPhone,
			Company: in.ClientCompany,
			NIF:     in.ClientNIF,
		},
		Event: document.EventInfo{
			Type:          models.EventType(in.EventType),
			CustomLabelPT: in.EventTypeCustomPt,
			CustomLabelEN: in.EventTypeCustomEn,
			Title:         in.EventTitle,
			Date:          in.EventDate,
			Location:      in.EventLocation,
			GuestCount:    in.GuestCount,
			Notes:         in.EventNotes,
		},
		ShowVAT: in.ShowVAT,
		Content: document.Content{IntroPT: in.IntroPt, IntroEN: in.IntroEn, TermsPT: in.TermsPt, TermsEN: in.TermsEn},
	}
}

// SelectionOptionInput is an option chosen under a selection line.
type SelectionOptionInput struct {
	OptionID    uuid.UUID `json:"optionId"`
	Quantity    *int      `json:"quantity"`
	CustomPrice *float64  `json:"customPrice"`
	Notes       string    `json:"notes"`
}

type SelectionLineInput struct {
	ServiceID       uuid.UUID              `json:"serviceId"`
	Quantity        *int                   `json:"quantity"`
	CustomPrice     *float64               `json:"customPrice"`
	Notes           string                 `json:"notes"`
	IncludedInTotal *bool                  `json:"includedInTotal"`
	SortOrder       int                    `json:"sortOrder"`
	Options         []SelectionOptionInput `json:"options"`
}

// SelectionInput is a proposal described by catalog references; pricing
// happens server side.
type SelectionInput struct {
	Reference string               `json:"reference"`
	Status    string               `json:"status"`
	Language  string               `json:"language"`
	Client    document.ClientInfo  `json:"client"`
	Event     document.EventInfo   `json:"event"`
	ShowVAT   bool                 `json:"showVat"`
	VATRate   *float64             `json:"vatRate"`
	Content   document.Content     `json:"content"`
	Lines     []SelectionLineInput `json:"lines"`
}

// ProposalDetail is a stored proposal with everything needed to show it.
type ProposalDetail struct {
	models.Proposal
	IncludedItems []models.ServiceIncludedItem `json:"includedItems"`
}

type PDFResult struct {
	Bytes    []byte
	Filename string
}

// Create stores a proposal priced by the caller, lines and options included,
// in one transaction.
func (s *ProposalService) Create(ctx context.Context, in CreateProposalInput) (*models.Proposal, error) {
	h, err := s.normalizeHeader(in.header(), in.VATRate)
	if err != nil {
		return nil, err
	}
	lang := models.ParseLanguage(in.Language)

	p := models.Proposal{
		ID:        uuid.New(),
		Language:  lang,
		ShowVAT:   h.ShowVAT,
		VATRate:   h.VATRate,
		Subtotal:  in.Subtotal,
		VATAmount: in.VATAmount,
		Total:     in.Total,
	}
	applyHeader(&p, h)

	for i, line := range in.Services {
		pt := line.PricingType
		if pt == "" {
			pt = models.PricingFixed
		}
		if !pt.Valid() {
			return nil, invalidf("Invalid pricing type: %s", line.PricingType)
		}
		if strings.TrimSpace(line.ServiceNamePt) == "" {
			return nil, invalidf("Service name is required")
		}
		ps := models.ProposalService{
			ID:              uuid.New(),
			ProposalID:      p.ID,
			ServiceID:       line.ServiceID,
			ServiceNamePt:   strings.TrimSpace(line.ServiceNamePt),
			ServiceNameEn:   strings.TrimSpace(line.ServiceNameEn),
			PricingType:     pt,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			CustomPrice:     line.CustomPrice,
			TotalPrice:      line.TotalPrice,
			Notes:           optionalText(line.Notes),
			IncludedInTotal: line.IncludedInTotal == nil || *line.IncludedInTotal,
			SortOrder:       i + 1,
		}
		if line.SortOrder != nil {
			ps.SortOrder = *line.SortOrder
		}
		p.Services = append(p.Services, ps)
	}

	for i, opt := range in.Options {
		if opt.ServiceIndex < 0 || opt.ServiceIndex >= len(p.Services) {
			config.Log.Warn("dropping option with unknown service index", zap.Int("service_index", opt.ServiceIndex))
			continue
		}
		parent := &p.Services[opt.ServiceIndex]
		row := models.ProposalServiceOption{
			ID:                uuid.New(),
			ProposalServiceID: parent.ID,
			OptionID:          opt.OptionID,
			OptionNamePt:      strings.TrimSpace(opt.OptionNamePt),
			OptionNameEn:      strings.TrimSpace(opt.OptionNameEn),
			PricingType:       opt.PricingType,
			Quantity:          opt.Quantity,
			UnitPrice:         opt.UnitPrice,
			TotalPrice:        opt.TotalPrice,
			Notes:             optionalText(opt.Notes),
			SortOrder:         i + 1,
		}
		if opt.SortOrder != nil {
			row.SortOrder = *opt.SortOrder
		}
		if err := s.snapshotOption(ctx, &row); err != nil {
			return nil, err
		}
		parent.Options = append(parent.Options, row)
	}

	if err := s.save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateFromSelection prices a selection against the live catalog and stores
// the result atomically.
func (s *ProposalService) CreateFromSelection(ctx context.Context, in SelectionInput) (*models.Proposal, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	h, err := s.normalizeHeader(in.header(), in.VATRate)
	if err != nil {
		return nil, err
	}
	sel, err := buildSelection(catalog, in.Event.GuestCount, in.Lines)
	if err != nil {
		return nil, err
	}

	p := document.ToRows(sel, catalog, h, models.ParseLanguage(in.Language))
	if err := s.save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Preview composes a selection without storing anything. An empty lang uses
// the selection's language.
func (s *ProposalService) Preview(ctx context.Context, in SelectionInput, lang string) (document.Document, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return document.Document{}, err
	}
	h, err := s.normalizeHeader(in.header(), in.VATRate)
	if err != nil {
		return document.Document{}, err
	}
	sel, err := buildSelection(catalog, in.Event.GuestCount, in.Lines)
	if err != nil {
		return document.Document{}, err
	}
	company, err := s.companyInfo(ctx)
	if err != nil {
		return document.Document{}, err
	}
	if lang == "" {
		lang = in.Language
	}
	return document.Compose(sel, catalog, models.ParseLanguage(lang), h, company), nil
}

func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*ProposalDetail, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.includedItems(ctx, p.Services)
	if err != nil {
		return nil, err
	}
	return &ProposalDetail{Proposal: *p, IncludedItems: items}, nil
}

// List returns proposals newest first, optionally filtered by status.
func (s *ProposalService) List(ctx context.Context, status string) ([]models.Proposal, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		st := models.ProposalStatus(status)
		if !st.Editable() && st != models.ProposalCancelled {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", st)
	}
	var proposals []models.Proposal
	if err := q.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// Patch updates status and/or language. At least one must be given and the
// status cannot be set to cancelled here.
func (s *ProposalService) Patch(ctx context.Context, id uuid.UUID, status, language string) (*models.Proposal, error) {
	updates := map[string]any{}
	if status != "" {
		if !models.ProposalStatus(status).Editable() {
			return nil, ErrInvalidStatus
		}
		updates["status"] = status
	}
	if language == string(models.LangPT) || language == string(models.LangEN) {
		updates["language"] = language
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	var p models.Proposal
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkAccepted records the client's confirmation. Cancelled proposals stay
// cancelled.
func (s *ProposalService) MarkAccepted(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	switch p.Status {
	case models.ProposalAccepted:
		return &p, nil
	case models.ProposalCancelled:
		return nil, ErrInvalidStatus
	}
	if err := s.db.WithContext(ctx).Model(&p).Update("status", models.ProposalAccepted).Error; err != nil {
		return nil, err
	}
	p.Status = models.ProposalAccepted
	config.Log.Info("proposal accepted", zap.String("proposal_id", id.String()))
	return &p, nil
}

// RenderDocument rebuilds a stored proposal in the given language.
func (s *ProposalService) RenderDocument(ctx context.Context, id uuid.UUID, lang models.Language) (document.Document, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return document.Document{}, err
	}
	return s.documentFor(ctx, p, lang)
}

// GeneratePDF renders the stored proposal. Drafts and sent proposals are
// marked sent; the language is stamped either way.
func (s *ProposalService) GeneratePDF(ctx context.Context, id uuid.UUID, lang models.Language) (*PDFResult, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.documentFor(ctx, p, lang)
	if err != nil {
		return nil, err
	}
	out, err := render.PDF(doc)
	if err != nil {
		config.Log.Error("pdf render failed", zap.String("proposal_id", id.String()), zap.Error(err))
		return nil, err
	}

	updates := map[string]any{"language": lang}
	if p.Status == models.ProposalDraft || p.Status == models.ProposalSent {
		updates["status"] = models.ProposalSent
		updates["sent_at"] = s.now()
	}
	if err := s.db.WithContext(ctx).Model(&models.Proposal{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	config.AppMetrics.IncrPDFRendered(string(lang))

	return &PDFResult{Bytes: out, Filename: doc.Filename()}, nil
}

func (s *ProposalService) documentFor(ctx context.Context, p *models.Proposal, lang models.Language) (document.Document, error) {
	items, err := s.includedItems(ctx, p.Services)
	if err != nil {
		return document.Document{}, err
	}
	company, err := s.companyInfo(ctx)
	if err != nil {
		return document.Document{}, err
	}
	var options []models.ProposalServiceOption
	for _, ps := range p.Services {
		options = append(options, ps.Options...)
	}
	return document.FromRows(*p, p.Services, options, items, company, lang), nil
}

func (s *ProposalService) load(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	err := s.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Services.Options", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *ProposalService) includedItems(ctx context.Context, lines []models.ProposalService) ([]models.ServiceIncludedItem, error) {
	var ids []uuid.UUID
	for _, ps := range lines {
		if ps.ServiceID != nil {
			ids = append(ids, *ps.ServiceID)
		}
	}
	items := []models.ServiceIncludedItem{}
	if len(ids) == 0 {
		return items, nil
	}
	err := s.db.WithContext(ctx).Where("service_id IN ?", ids).Order("sort_order ASC").Find(&items).Error
	return items, err
}

func (s *ProposalService) companyInfo(ctx context.Context) (document.CompanyInfo, error) {
	var profile models.CompanyProfile
	err := s.db.WithContext(ctx).Order("updated_at DESC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return document.CompanyFromProfile(nil), nil
	}
	if err != nil {
		return document.CompanyInfo{}, err
	}
	return document.CompanyFromProfile(&profile), nil
}

func (s *ProposalService) loadCatalog(ctx context.Context) (pricing.Catalog, error) {
	var rows []models.Service
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("IncludedItems").
		Preload("PricedOptions").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return pricing.NormalizeCatalog(rows), nil
}

// snapshotOption fills missing option names and pricing from the catalog.
func (s *ProposalService) snapshotOption(ctx context.Context, row *models.ProposalServiceOption) error {
	if row.OptionID != nil && (row.OptionNamePt == "" || row.PricingType == "") {
		var opt models.ServicePricedOption
		err := s.db.WithContext(ctx).First(&opt, "id = ?", *row.OptionID).Error
		switch {
		case err == nil:
			if row.OptionNamePt == "" {
				row.OptionNamePt, row.OptionNameEn = opt.NamePt, opt.NameEn
			}
			if row.PricingType == "" {
				row.PricingType = opt.PricingType
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	if row.PricingType == "" {
		row.PricingType = models.PricingFixed
	}
	return nil
}

func (s *ProposalService) save(ctx context.Context, p *models.Proposal) error {
	if p.ReferenceNumber == "" {
		p.ReferenceNumber = s.newReference()
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(p).Error; err != nil {
		tx.Rollback()
		config.Log.Error("failed to save proposal", zap.String("proposal_id", p.ID.String()), zap.Error(err))
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	config.AppMetrics.IncrProposalCreated()
	config.Log.Info("proposal created",
		zap.String("proposal_id", p.ID.String()),
		zap.String("reference", p.ReferenceNumber),
		zap.Int("lines", len(p.Services)),
	)
	return nil
}

func (s *ProposalService) newReference() string {
	return "PROP-" + s.now().Format("20060102") + "-" + utils.GenerateRandomString(6)
}

// normalizeHeader applies defaults and validates the parts of a header that
// callers type by hand.
func (s *ProposalService) normalizeHeader(h document.Header, vatRate *float64) (document.Header, error) {
	h.Client.Name = strings.TrimSpace(h.Client.Name)
	if h.Client.Name == "" {
		return h, invalidf("Client name is required")
	}
	if nif := strings.TrimSpace(h.Client.NIF); nif != "" {
		if !utils.ValidateNIF(nif) {
			return h, invalidf("Invalid NIF")
		}
		h.Client.NIF = utils.NormalizeNIF(nif)
	}
	if !h.Status.Editable() {
		h.Status = models.ProposalDraft
	}
	if h.Event.Date != "" {
		if _, err := time.Parse(utils.DateLayout, h.Event.Date); err != nil {
			return h, invalidf("Invalid event date, expected YYYY-MM-DD")
		}
	}
	if h.Event.GuestCount < 0 {
		return h, invalidf("Guest count cannot be negative")
	}
	if t, ok := document.ParseEventType(string(h.Event.Type)); ok {
		h.Event.Type = t
	} else {
		if h.Event.CustomLabelPT == "" {
			h.Event.CustomLabelPT = strings.TrimSpace(string(h.Event.Type))
		}
		h.Event.Type = models.EventOther
	}
	h.VATRate = s.defaultVATRate
	if vatRate != nil {
		if *vatRate < 0 || *vatRate > 100 {
			return h, invalidf("VAT rate must be between 0 and 100")
		}
		h.VATRate = *vatRate
	}
	return h, nil
}

func (in SelectionInput) header() document.Header {
	return document.Header{
		Reference: in.Reference,
		Status:    models.ProposalStatus(in.Status),
		Client:    in.Client,
		Event:     in.Event,
		ShowVAT:   in.ShowVAT,
		Content:   in.Content,
	}
}

func applyHeader(p *models.Proposal, h document.Header) {
	p.Status = h.Status
	p.ReferenceNumber = h.Reference
	p.ClientName = h.Client.Name
	p.ClientEmail = optionalText(h.Client.Email)
	p.ClientPhone = optionalText(h.Client.Phone)
	p.ClientCompany = optionalText(h.Client.Company)
	p.ClientNIF = optionalText(h.Client.NIF)
	p.EventType = h.Event.Type
	p.EventTypeCustomPt = optionalText(h.Event.CustomLabelPT)
	p.EventTypeCustomEn = optionalText(h.Event.CustomLabelEN)
	p.EventTitle = optionalText(h.Event.Title)
	p.EventDate = optionalText(h.Event.Date)
	p.EventLocation = optionalText(h.Event.Location)
	p.GuestCount = h.Event.GuestCount
	p.EventNotes = optionalText(h.Event.Notes)
	p.IntroPt = optionalText(h.Content.IntroPT)
	p.IntroEn = optionalText(h.Content.IntroEN)
	p.TermsPt = optionalText(h.Content.TermsPT)
	p.TermsEn = optionalText(h.Content.TermsEN)
}

// buildSelection replays the caller's lines onto a selection. Lines for
// services missing from the catalog are skipped.
func buildSelection(catalog pricing.Catalog, guests int, lines []SelectionLineInput) (*pricing.Selection, error) {
	sel := pricing.NewSelection(guests)
	for _, line := range lines {
		svc, ok := catalog[line.ServiceID]
		if !ok {
			config.Log.Debug("skipping unknown service", zap.String("service_id", line.ServiceID.String()))
			continue
		}
		e := sel.Add(svc)
		if line.Quantity != nil {
			e.Quantity = *line.Quantity
		}
		e.CustomPrice = line.CustomPrice
		e.Notes = line.Notes
		if line.IncludedInTotal != nil {
			e.IncludedInTotal = *line.IncludedInTotal
		}
		if line.SortOrder > 0 {
			e.SortOrder = line.SortOrder
		}
		for _, o := range line.Options {
			if err := sel.AddOption(svc, o.OptionID); err != nil {
				return nil, invalidf("Option %s does not belong to service %s", o.OptionID, svc.ID)
			}
			entry := sel.Find(svc.ID)
			oe := &entry.Options[len(entry.Options)-1]
			if oe.OptionID != o.OptionID {
				continue
			}
			if o.Quantity != nil {
				oe.Quantity = *o.Quantity
			}
			oe.CustomPrice = o.CustomPrice
			oe.Notes = o.Notes
		}
	}
	return sel, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
