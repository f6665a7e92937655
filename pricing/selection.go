package pricing

import (
	"errors"
	"sort"

	"msilva-backend/models"

	"github.com/google/uuid"
)

var (
	ErrNotSelected   = errors.New("service is not selected")
	ErrUnknownOption = errors.New("option does not belong to service")
)

type OptionEntry struct {
	OptionID    uuid.UUID `json:"optionId"`
	Quantity    int       `json:"quantity"`
	CustomPrice *float64  `json:"customPrice"`
	Notes       string    `json:"notes"`
}

// Entry is one selected service. Notes, when set, replaces the catalog's
// included items in the document.
type Entry struct {
	ServiceID       uuid.UUID     `json:"serviceId"`
	Quantity        int           `json:"quantity"`
	CustomPrice     *float64      `json:"customPrice"`
	Notes           string        `json:"notes"`
	IncludedInTotal bool          `json:"includedInTotal"`
	SortOrder       int           `json:"sortOrder"`
	Options         []OptionEntry `json:"options"`
}

// Selection is the working set of services chosen for one proposal.
type Selection struct {
	GuestCount int     `json:"guestCount"`
	Entries    []Entry `json:"entries"`
}

func NewSelection(guestCount int) *Selection {
	return &Selection{GuestCount: guestCount}
}

func (s *Selection) defaultQuantity(pt models.PricingType) int {
	if pt == models.PricingPerPerson {
		return atLeastOne(s.GuestCount)
	}
	return 1
}

// Add selects a service at the end of the order. Selecting a service twice
// returns the existing entry.
func (s *Selection) Add(svc CatalogService) *Entry {
	if e := s.Find(svc.ID); e != nil {
		return e
	}
	s.Entries = append(s.Entries, Entry{
		ServiceID:       svc.ID,
		Quantity:        s.defaultQuantity(svc.PricingType),
		IncludedInTotal: true,
		SortOrder:       s.nextSortOrder(),
	})
	return &s.Entries[len(s.Entries)-1]
}

// AddOption selects an option under an already selected service.
func (s *Selection) AddOption(svc CatalogService, optionID uuid.UUID) error {
	e := s.Find(svc.ID)
	if e == nil {
		return ErrNotSelected
	}
	opt, ok := svc.Option(optionID)
	if !ok {
		return ErrUnknownOption
	}
	for _, o := range e.Options {
		if o.OptionID == optionID {
			return nil
		}
	}
	e.Options = append(e.Options, OptionEntry{OptionID: optionID, Quantity: s.defaultQuantity(opt.PricingType)})
	return nil
}

func (s *Selection) Remove(serviceID uuid.UUID) {
	for i := range s.Entries {
		if s.Entries[i].ServiceID == serviceID {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return
		}
	}
}

func (s *Selection) Find(serviceID uuid.UUID) *Entry {
	for i := range s.Entries {
		if s.Entries[i].ServiceID == serviceID {
			return &s.Entries[i]
		}
	}
	return nil
}

// SetGuestCount moves per_person quantities that still track the previous
// guest count to the new one. Quantities edited away from it stay pinned.
// A guest count below 1 tracks as 1.
func (s *Selection) SetGuestCount(n int, catalog Catalog) {
	prev := atLeastOne(s.GuestCount)
	s.GuestCount = n
	next := atLeastOne(n)
	for i := range s.Entries {
		e := &s.Entries[i]
		svc, ok := catalog[e.ServiceID]
		if !ok {
			continue
		}
		if svc.PricingType == models.PricingPerPerson && e.Quantity == prev {
			e.Quantity = next
		}
		for j := range e.Options {
			o := &e.Options[j]
			opt, ok := svc.Option(o.OptionID)
			if ok && opt.PricingType == models.PricingPerPerson && o.Quantity == prev {
				o.Quantity = next
			}
		}
	}
}

// MoveUp swaps the entry with the one before it in display order.
func (s *Selection) MoveUp(serviceID uuid.UUID) bool {
	return s.move(serviceID, -1)
}

// MoveDown swaps the entry with the one after it in display order.
func (s *Selection) MoveDown(serviceID uuid.UUID) bool {
	return s.move(serviceID, 1)
}

func (s *Selection) move(serviceID uuid.UUID, delta int) bool {
	s.renumber()
	for i := range s.Entries {
		if s.Entries[i].ServiceID != serviceID {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(s.Entries) {
			return false
		}
		s.Entries[i].SortOrder, s.Entries[j].SortOrder = s.Entries[j].SortOrder, s.Entries[i].SortOrder
		s.Entries[i], s.Entries[j] = s.Entries[j], s.Entries[i]
		return true
	}
	return false
}

// Ordered returns a copy of the entries by sort order, renumbered 1..n.
func (s *Selection) Ordered() []Entry {
	s.renumber()
	out := make([]Entry, len(s.Entries))
	copy(out, s.Entries)
	return out
}

// renumber sorts entries by SortOrder (ties keep insertion order) and
// rewrites them as 1..n.
func (s *Selection) renumber() {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		return s.Entries[i].SortOrder < s.Entries[j].SortOrder
	})
	for i := range s.Entries {
		s.Entries[i].SortOrder = i + 1
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (s *Selection) nextSortOrder() int {
	max := 0
	for _, e := range s.Entries {
		if e.SortOrder > max {
			max = e.SortOrder
		}
	}
	return max + 1
}

// LinePrice is a priced selection line or option.
type LinePrice struct {
	UnitPrice  float64
	Determined bool
	Total      float64
}

func PriceEntry(svc CatalogService, e Entry) LinePrice {
	price, ok := EffectiveUnitPrice(svc.PricingType, svc.BasePrice, e.CustomPrice)
	return LinePrice{UnitPrice: price, Determined: ok, Total: LineTotal(price, ok, e.Quantity)}
}

func PriceOption(opt Option, o OptionEntry) LinePrice {
	price, ok := EffectiveUnitPrice(opt.PricingType, opt.Price, o.CustomPrice)
	return LinePrice{UnitPrice: price, Determined: ok, Total: LineTotal(price, ok, o.Quantity)}
}

// Subtotal adds line and option totals over entries included in the total.
// Entries missing from the catalog are skipped.
func (s *Selection) Subtotal(catalog Catalog) float64 {
	var totals []float64
	for _, e := range s.Entries {
		if !e.IncludedInTotal {
			continue
		}
		svc, ok := catalog[e.ServiceID]
		if !ok {
			continue
		}
		totals = append(totals, PriceEntry(svc, e).Total)
		for _, o := range e.Options {
			if opt, ok := svc.Option(o.OptionID); ok {
				totals = append(totals, PriceOption(opt, o).Total)
			}
		}
	}
	return Sum(totals...)
}
