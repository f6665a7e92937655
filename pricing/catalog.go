package pricing

import (
	"sort"
	"strings"

	"msilva-backend/models"

	"github.com/google/uuid"
)

// Text is a PT/EN pair. EN falls back to PT when blank.
type Text struct {
	PT string `json:"pt"`
	EN string `json:"en"`
}

func (t Text) In(lang models.Language) string {
	if lang == models.LangEN && strings.TrimSpace(t.EN) != "" {
		return t.EN
	}
	return t.PT
}

type Option struct {
	ID          uuid.UUID          `json:"id"`
	Name        Text               `json:"name"`
	Description Text               `json:"description"`
	PricingType models.PricingType `json:"pricingType"`
	Price       *float64           `json:"price"`
	MinQuantity *int               `json:"minQuantity"`
	SortOrder   int                `json:"sortOrder"`
}

// CatalogService is a denormalized catalog entry ready for pricing.
type CatalogService struct {
	ID            uuid.UUID          `json:"id"`
	CategoryID    *uuid.UUID         `json:"categoryId"`
	Category      Text               `json:"category"`
	Name          Text               `json:"name"`
	Description   Text               `json:"description"`
	PricingType   models.PricingType `json:"pricingType"`
	BasePrice     *float64           `json:"basePrice"`
	Unit          Text               `json:"unit"`
	MinQuantity   *int               `json:"minQuantity"`
	MaxQuantity   *int               `json:"maxQuantity"`
	Tags          []string           `json:"tags"`
	SortOrder     int                `json:"sortOrder"`
	IsActive      bool               `json:"isActive"`
	IncludedItems []Text             `json:"includedItems"`
	Options       []Option           `json:"options"`
}

func (s CatalogService) Option(id uuid.UUID) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is keyed by service id.
type Catalog map[uuid.UUID]CatalogService

// NormalizeCatalog flattens service rows (with IncludedItems, PricedOptions
// and Category preloaded) into a Catalog.
func NormalizeCatalog(services []models.Service) Catalog {
	catalog := make(Catalog, len(services))
	for _, s := range services {
		cs := CatalogService{
			ID:          s.ID,
			CategoryID:  s.CategoryID,
			Name:        Text{PT: s.NamePt, EN: s.NameEn},
			Description: Text{PT: s.DescriptionPt, EN: s.DescriptionEn},
			PricingType: s.PricingType,
			BasePrice:   s.BasePrice,
			Unit:        Text{PT: s.UnitPt, EN: s.UnitEn},
			MinQuantity: s.MinQuantity,
			MaxQuantity: s.MaxQuantity,
			Tags:        append([]string(nil), s.Tags...),
			SortOrder:   s.SortOrder,
			IsActive:    s.IsActive,
		}
		if cs.PricingType == "" {
			cs.PricingType = models.PricingFixed
		}
		if s.Category != nil {
			cs.Category = Text{PT: s.Category.NamePt, EN: s.Category.NameEn}
		}
		cs.IncludedItems = includedItems(s)

		opts := append([]models.ServicePricedOption(nil), s.PricedOptions...)
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].SortOrder < opts[j].SortOrder })
		for _, o := range opts {
			pt := o.PricingType
			if pt == "" {
				pt = models.PricingFixed
			}
			cs.Options = append(cs.Options, Option{
				ID:          o.ID,
				Name:        Text{PT: o.NamePt, EN: o.NameEn},
				Description: Text{PT: o.DescriptionPt, EN: o.DescriptionEn},
				PricingType: pt,
				Price:       o.Price,
				MinQuantity: o.MinQuantity,
				SortOrder:   o.SortOrder,
			})
		}
		catalog[s.ID] = cs
	}
	return catalog
}

// Sorted returns the catalog by sort order, then PT name.
func (c Catalog) Sorted() []CatalogService {
	out := make([]CatalogService, 0, len(c))
	for _, s := range c {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name.PT < out[j].Name.PT
	})
	return out
}

// includedItems prefers the explicit item rows, then the delimited list
// fields, then the description lines.
func includedItems(s models.Service) []Text {
	if len(s.IncludedItems) > 0 {
		rows := append([]models.ServiceIncludedItem(nil), s.IncludedItems...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })
		out := make([]Text, 0, len(rows))
		for _, r := range rows {
			out = append(out, Text{PT: r.TextPt, EN: r.TextEn})
		}
		return out
	}
	if items := zipLines(s.IncludedItemsPt, s.IncludedItemsEn); len(items) > 0 {
		return items
	}
	return zipLines(s.DescriptionPt, s.DescriptionEn)
}

func zipLines(pt, en string) []Text {
	ptLines, enLines := SplitLines(pt), SplitLines(en)
	n := len(ptLines)
	if len(enLines) > n {
		n = len(enLines)
	}
	out := make([]Text, 0, n)
	for i := 0; i < n; i++ {
		var t Text
		if i < len(ptLines) {
			t.PT = ptLines[i]
		}
		if i < len(enLines) {
			t.EN = enLines[i]
		}
		if t.PT == "" {
			t.PT = t.EN
		}
		out = append(out, t)
	}
	return out
}

// SplitLines splits on newlines, trims, and drops blank lines.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
