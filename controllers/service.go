package controllers

import (
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/pricing"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncludedItemInput struct {
	SectionKey string `json:"sectionKey"`
	TextPt     string `json:"textPt"`
	TextEn     string `json:"textEn"`
	SortOrder  *int   `json:"sortOrder"`
}

type PricedOptionInput struct {
	NamePt        string             `json:"namePt"`
	NameEn        string             `json:"nameEn"`
	DescriptionPt string             `json:"descriptionPt"`
	DescriptionEn string             `json:"descriptionEn"`
	PricingType   models.PricingType `json:"pricingType"`
	Price         *float64           `json:"price"`
	MinQuantity   *int               `json:"minQuantity"`
	SortOrder     *int               `json:"sortOrder"`
}

// ServiceInput creates or patches a catalog service. IncludedItems and
// PricedOptions, when present, replace the stored lists.
type ServiceInput struct {
	CategoryID      *uuid.UUID          `json:"categoryId"`
	NamePt          *string             `json:"namePt"`
	NameEn          *string             `json:"nameEn"`
	DescriptionPt   *string             `json:"descriptionPt"`
	DescriptionEn   *string             `json:"descriptionEn"`
	PricingType     *models.PricingType `json:"pricingType"`
	BasePrice       *float64            `json:"basePrice"`
	UnitPt          *string             `json:"unitPt"`
	UnitEn          *string             `json:"unitEn"`
	MinQuantity     *int                `json:"minQuantity"`
	MaxQuantity     *int                `json:"maxQuantity"`
	Tags            *[]string           `json:"tags"`
	IncludedItemsPt *string             `json:"includedItemsPt"`
	IncludedItemsEn *string             `json:"includedItemsEn"`
	SortOrder       *int                `json:"sortOrder"`
	IsActive        *bool               `json:"isActive"`

	IncludedItems *[]IncludedItemInput `json:"includedItems"`
	PricedOptions *[]PricedOptionInput `json:"pricedOptions"`
}

func (in ServiceInput) apply(s *models.Service) string {
	if in.CategoryID != nil {
		s.CategoryID = in.CategoryID
	}
	setText := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setText(&s.NamePt, in.NamePt)
	setText(&s.NameEn, in.NameEn)
	setText(&s.DescriptionPt, in.DescriptionPt)
	setText(&s.DescriptionEn, in.DescriptionEn)
	setText(&s.UnitPt, in.UnitPt)
	setText(&s.UnitEn, in.UnitEn)
	setText(&s.IncludedItemsPt, in.IncludedItemsPt)
	setText(&s.IncludedItemsEn, in.IncludedItemsEn)

	if in.PricingType != nil {
		if !in.PricingType.Valid() {
			return "Invalid pricing type"
		}
		s.PricingType = *in.PricingType
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return "Price cannot be negative"
		}
		s.BasePrice = in.BasePrice
	}
	if in.MinQuantity != nil {
		s.MinQuantity = in.MinQuantity
	}
	if in.MaxQuantity != nil {
		s.MaxQuantity = in.MaxQuantity
	}
	if in.Tags != nil {
		s.Tags = *in.Tags
	}
	if in.SortOrder != nil {
		s.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}

	if s.NamePt == "" {
		return "namePt is required"
	}
	if s.PricingType == "" {
		s.PricingType = models.PricingFixed
	}
	if s.BasePrice == nil && s.PricingType != models.PricingOnRequest {
		return "basePrice is required unless pricing is on_request"
	}
	return ""
}

func includedItemRows(serviceID uuid.UUID, items []IncludedItemInput) []models.ServiceIncludedItem {
	rows := make([]models.ServiceIncludedItem, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.TextPt) == "" {
			continue
		}
		row := models.ServiceIncludedItem{
			ServiceID:  serviceID,
			SectionKey: it.SectionKey,
			TextPt:     strings.TrimSpace(it.TextPt),
			TextEn:     strings.TrimSpace(it.TextEn),
			SortOrder:  i + 1,
		}
		if it.SortOrder != nil {
			row.SortOrder = *it.SortOrder
		}
		rows = append(rows, row)
	}
	return rows
}

func pricedOptionRows(serviceID uuid.UUID, opts []PricedOptionInput) ([]models.ServicePricedOption, string) {
	rows := make([]models.ServicePricedOption, 0, len(opts))
	for i, o := range opts {
		if strings.TrimSpace(o.NamePt) == "" {
			return nil, "Option namePt is required"
		}
		pt := o.PricingType
		if pt == "" {
			pt = models.PricingFixed
		}
		if !pt.Valid() {
			return nil, "Invalid option pricing type"
		}
		row := models.ServicePricedOption{
			ServiceID:     serviceID,
			NamePt:        strings.TrimSpace(o.NamePt),
			NameEn:        strings.TrimSpace(o.NameEn),
			DescriptionPt: o.DescriptionPt,
			DescriptionEn: o.DescriptionEn,
			PricingType:   pt,
			Price:         o.Price,
			MinQuantity:   o.MinQuantity,
			SortOrder:     i + 1,
		}
		if o.SortOrder != nil {
			row.SortOrder = *o.SortOrder
		}
		rows = append(rows, row)
	}
	return rows, ""
}

func catalogQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("IncludedItems").Preload("PricedOptions")
}

// GetServices returns the normalized catalog. ?active=true hides inactive
// services.
func GetServices(c *gin.Context) {
	q := catalogQuery(config.DB)
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.Service
	if err := q.Find(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, pricing.NormalizeCatalog(rows).Sorted())
}

func GetService(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}
	var row models.Service
	if err := catalogQuery(config.DB).First(&row, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Service not found")
		return
	}
	c.JSON(http.StatusOK, pricing.NormalizeCatalog([]models.Service{row})[row.ID])
}

func CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := models.Service{ID: uuid.New(), IsActive: true}
	if msg := input.apply(&svc); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if input.IncludedItems != nil {
		svc.IncludedItems = includedItemRows(svc.ID, *input.IncludedItems)
	}
	if input.PricedOptions != nil {
		opts, msg := pricedOptionRows(svc.ID, *input.PricedOptions)
		if msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
		svc.PricedOptions = opts
	}

	if err := config.DB.Create(&svc).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, pricing.NormalizeCatalog([]models.Service{svc})[svc.ID])
}

// UpdateService patches the service. Included items and options are
// replaced wholesale when the body carries them.
func UpdateService(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var svc models.Service
	if err := config.DB.First(&svc, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Service not found")
		return
	}
	if msg := input.apply(&svc); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	var options []models.ServicePricedOption
	if input.PricedOptions != nil {
		var msg string
		if options, msg = pricedOptionRows(id, *input.PricedOptions); msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Omit("Category", "IncludedItems", "PricedOptions").Save(&svc).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if input.IncludedItems != nil {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceIncludedItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if rows := includedItemRows(id, *input.IncludedItems); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}
	if input.PricedOptions != nil {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServicePricedOption{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var out models.Service
	if err := catalogQuery(config.DB).First(&out, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, pricing.NormalizeCatalog([]models.Service{out})[out.ID])
}

// DeleteService removes a catalog entry. Stored proposal lines keep their
// snapshot and a dangling service id.
func DeleteService(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok {
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceIncludedItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.ServicePricedOption{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Service{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err, "Service not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
