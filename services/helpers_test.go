package services

import (
	"strings"
	"testing"
	"time"

	"msilva-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func ptrFloat(v float64) *float64 { return &v }
func ptrStr(s string) *string     { return &s }
func ptrInt(v int) *int           { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type testCatalog struct {
	menu  models.Service
	wine  models.ServicePricedOption
	dj    models.Service
	decor models.Service
}

// seedCatalog stores a per person menu with a wine option, a fixed DJ and an
// on request decoration.
func seedCatalog(t *testing.T, db *gorm.DB) testCatalog {
	t.Helper()
	c := testCatalog{
		menu: models.Service{
			NamePt:      "Menu Premium",
			NameEn:      "Premium Menu",
			PricingType: models.PricingPerPerson,
			BasePrice:   ptrFloat(35),
			IsActive:    true,
			SortOrder:   1,
			IncludedItems: []models.ServiceIncludedItem{
				{TextPt: "Entradas", TextEn: "Starters", SortOrder: 1},
				{TextPt: "Sobremesa", TextEn: "Dessert", SortOrder: 2},
			},
		},
		dj: models.Service{
			NamePt:      "DJ",
			NameEn:      "DJ",
			PricingType: models.PricingFixed,
			BasePrice:   ptrFloat(600),
			IsActive:    true,
			SortOrder:   2,
		},
		decor: models.Service{
			NamePt:      "Decoração",
			NameEn:      "Decoration",
			PricingType: models.PricingOnRequest,
			IsActive:    true,
			SortOrder:   3,
		},
	}
	for _, s := range []*models.Service{&c.menu, &c.dj, &c.decor} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}
	c.wine = models.ServicePricedOption{
		ServiceID:   c.menu.ID,
		NamePt:      "Vinho",
		NameEn:      "Wine",
		PricingType: models.PricingPerPerson,
		Price:       ptrFloat(5),
		SortOrder:   1,
	}
	if err := db.Create(&c.wine).Error; err != nil {
		t.Fatalf("seed option: %v", err)
	}
	return c
}
