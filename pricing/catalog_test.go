package pricing

import (
	"testing"

	"msilva-backend/models"

	"github.com/google/uuid"
)

func TestNormalizeCatalogIncludedItemsPrecedence(t *testing.T) {
	explicit := models.Service{
		ID:            uuid.New(),
		NamePt:        "Menu",
		PricingType:   models.PricingPerPerson,
		DescriptionPt: "linha da descrição",
		IncludedItems: []models.ServiceIncludedItem{
			{TextPt: "Sobremesa", TextEn: "Dessert", SortOrder: 2},
			{TextPt: "Entrada", TextEn: "Starter", SortOrder: 1},
		},
	}
	listed := models.Service{
		ID:              uuid.New(),
		NamePt:          "Bar",
		IncludedItemsPt: "Água\n\n  Sumos  \n",
		IncludedItemsEn: "Water\nJuice",
		DescriptionPt:   "ignorada",
	}
	described := models.Service{
		ID:            uuid.New(),
		NamePt:        "Staff",
		DescriptionPt: "Empregados de mesa\r\nChefe de sala",
	}

	catalog := NormalizeCatalog([]models.Service{explicit, listed, described})

	items := catalog[explicit.ID].IncludedItems
	if len(items) != 2 || items[0].PT != "Entrada" || items[1].In(models.LangEN) != "Dessert" {
		t.Fatalf("unexpected explicit items %+v", items)
	}

	items = catalog[listed.ID].IncludedItems
	if len(items) != 2 || items[1].PT != "Sumos" || items[1].EN != "Juice" {
		t.Fatalf("unexpected list items %+v", items)
	}

	items = catalog[described.ID].IncludedItems
	if len(items) != 2 || items[1].PT != "Chefe de sala" || items[1].In(models.LangEN) != "Chefe de sala" {
		t.Fatalf("unexpected description items %+v", items)
	}

	if catalog[listed.ID].PricingType != models.PricingFixed {
		t.Fatalf("blank pricing type should default to fixed")
	}
}

func TestNormalizeCatalogSortsOptions(t *testing.T) {
	svc := models.Service{
		ID:     uuid.New(),
		NamePt: "Menu",
		PricedOptions: []models.ServicePricedOption{
			{ID: uuid.New(), NamePt: "B", SortOrder: 2, PricingType: models.PricingFixed},
			{ID: uuid.New(), NamePt: "A", SortOrder: 1, PricingType: models.PricingPerPerson},
		},
	}
	opts := NormalizeCatalog([]models.Service{svc})[svc.ID].Options
	if len(opts) != 2 || opts[0].Name.PT != "A" {
		t.Fatalf("expected options sorted by sort order, got %+v", opts)
	}
}

func TestCatalogSorted(t *testing.T) {
	a := models.Service{ID: uuid.New(), NamePt: "B", SortOrder: 1}
	b := models.Service{ID: uuid.New(), NamePt: "A", SortOrder: 1}
	c := models.Service{ID: uuid.New(), NamePt: "C", SortOrder: 0}
	sorted := NormalizeCatalog([]models.Service{a, b, c}).Sorted()
	if sorted[0].Name.PT != "C" || sorted[1].Name.PT != "A" || sorted[2].Name.PT != "B" {
		t.Fatalf("unexpected order %v %v %v", sorted[0].Name.PT, sorted[1].Name.PT, sorted[2].Name.PT)
	}
}
