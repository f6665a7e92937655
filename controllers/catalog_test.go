package controllers

import (
	"net/http"
	"testing"

	"msilva-backend/models"
)

func TestCreateCategoryAppends(t *testing.T) {
	useTestDB(t)
	r := newTestRouter()
	r.POST("/categories", CreateCategory)
	r.GET("/categories", GetCategories)

	for _, name := range []string{"Menus", "Animação"} {
		if w := doJSON(t, r, http.MethodPost, "/categories", map[string]any{"namePt": name}); w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", name, w.Code, w.Body.String())
		}
	}
	w := doJSON(t, r, http.MethodPost, "/categories", map[string]any{"nameEn": "No pt"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without namePt got %d", w.Code)
	}

	cats := decode[[]models.Category](t, doJSON(t, r, http.MethodGet, "/categories", nil))
	if len(cats) != 2 || cats[0].NamePt != "Menus" || cats[1].SortOrder != cats[0].SortOrder+1 {
		t.Fatalf("unexpected categories %+v", cats)
	}
}

func TestServiceRequiresPriceUnlessOnRequest(t *testing.T) {
	useTestDB(t)
	r := newTestRouter()
	r.POST("/services", CreateService)
	r.GET("/services", GetServices)

	w := doJSON(t, r, http.MethodPost, "/services", map[string]any{"namePt": "DJ", "pricingType": "fixed"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without basePrice got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/services", map[string]any{"namePt": "DJ", "pricingType": "hourly", "basePrice": 10})
	if w.Code != http.StatusBadRequest || errorMessage(t, w) != "Invalid pricing type" {
		t.Fatalf("expected invalid pricing type got %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/services", map[string]any{"namePt": "Decoração", "pricingType": "on_request"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected on_request service created got %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/services", map[string]any{
		"namePt":        "Menu",
		"pricingType":   "per_person",
		"basePrice":     35,
		"includedItems": []map[string]any{{"textPt": "Entradas"}, {"textPt": "  "}},
		"pricedOptions": []map[string]any{{"namePt": "Vinho", "pricingType": "per_person", "price": 5}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected menu created got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/services", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	if list := decode[[]map[string]any](t, w); len(list) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(list))
	}
}

func TestReplaceMomentItems(t *testing.T) {
	db := useTestDB(t)
	r := newTestRouter()
	r.POST("/moment-items/replace", ReplaceMomentItems)

	w := doJSON(t, r, http.MethodPost, "/moment-items/replace", map[string]any{"momentId": "nope"})
	if w.Code != http.StatusBadRequest || errorMessage(t, w) != "Invalid momentId" {
		t.Fatalf("expected 400 Invalid momentId got %d %s", w.Code, w.Body.String())
	}

	moment := models.ProposalMoment{Key: "welcome", TitlePt: "Boas-vindas"}
	db.Create(&moment)
	first := models.CatalogItem{NamePt: "Espumante", PricingType: models.PricingPerPerson}
	second := models.CatalogItem{NamePt: "Canapés", PricingType: models.PricingPerPerson}
	db.Create(&first)
	db.Create(&second)
	db.Create(&models.MomentItem{MomentID: moment.ID, ItemID: first.ID})

	w = doJSON(t, r, http.MethodPost, "/moment-items/replace", map[string]any{
		"momentId": moment.ID.String(),
		"items":    []map[string]any{{"itemId": second.ID.String(), "isDefault": true}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("replace: %d %s", w.Code, w.Body.String())
	}
	var items []models.MomentItem
	db.Where("moment_id = ?", moment.ID).Find(&items)
	if len(items) != 1 || items[0].ItemID != second.ID || !items[0].IsDefault {
		t.Fatalf("expected items replaced, got %+v", items)
	}
}
