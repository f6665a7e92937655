package controllers

import (
	"errors"
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompanyProfileInput struct {
	Name              *string `json:"name"`
	TaglinePt         *string `json:"taglinePt"`
	TaglineEn         *string `json:"taglineEn"`
	LogoURL           *string `json:"logoUrl"`
	ContactPhone      *string `json:"contactPhone"`
	ContactEmail      *string `json:"contactEmail"`
	Website           *string `json:"website"`
	Instagram         *string `json:"instagram"`
	Facebook          *string `json:"facebook"`
	AddressStreet     *string `json:"addressStreet"`
	AddressCity       *string `json:"addressCity"`
	AddressPostalCode *string `json:"addressPostalCode"`
	AddressCountry    *string `json:"addressCountry"`
}

func (in CompanyProfileInput) apply(cp *models.CompanyProfile) {
	for dst, src := range map[*string]*string{
		&cp.Name:              in.Name,
		&cp.TaglinePt:         in.TaglinePt,
		&cp.TaglineEn:         in.TaglineEn,
		&cp.LogoURL:           in.LogoURL,
		&cp.ContactPhone:      in.ContactPhone,
		&cp.ContactEmail:      in.ContactEmail,
		&cp.Website:           in.Website,
		&cp.Instagram:         in.Instagram,
		&cp.Facebook:          in.Facebook,
		&cp.AddressStreet:     in.AddressStreet,
		&cp.AddressCity:       in.AddressCity,
		&cp.AddressPostalCode: in.AddressPostalCode,
		&cp.AddressCountry:    in.AddressCountry,
	} {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
}

// GetCompanyProfile returns the most recently updated profile, or a blank
// one carrying the default company name.
func GetCompanyProfile(c *gin.Context) {
	var profile models.CompanyProfile
	err := config.DB.Order("updated_at DESC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, models.CompanyProfile{Name: models.DefaultCompanyName})
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveCompanyProfile updates the latest profile in place, creating it on
// first use.
func SaveCompanyProfile(c *gin.Context) {
	var input CompanyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.CompanyProfile
	err := config.DB.Order("updated_at DESC").First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	input.apply(&profile)
	if profile.Name == "" {
		profile.Name = models.DefaultCompanyName
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, profile)
}

type TermsTemplateInput struct {
	Name      *string `json:"name"`
	ContentPt *string `json:"contentPt"`
	ContentEn *string `json:"contentEn"`
	IsDefault *bool   `json:"isDefault"`
}

func (in TermsTemplateInput) apply(t *models.TermsTemplate) {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContentPt != nil {
		t.ContentPt = *in.ContentPt
	}
	if in.ContentEn != nil {
		t.ContentEn = *in.ContentEn
	}
	if in.IsDefault != nil {
		t.IsDefault = *in.IsDefault
	}
}

// saveTerms persists t, clearing the default flag elsewhere when t takes it.
func saveTerms(t *models.TermsTemplate, create bool) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if create {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		} else if err := tx.Save(t).Error; err != nil {
			return err
		}
		if t.IsDefault {
			if err := tx.Model(&models.TermsTemplate{}).
				Where("id <> ? AND is_default = ?", t.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func GetTermsTemplates(c *gin.Context) {
	var templates []models.TermsTemplate
	if err := config.DB.Order("is_default DESC, name ASC").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, templates)
}

func GetTermsTemplate(c *gin.Context) {
	id, ok := parseID(c, "template")
	if !ok {
		return
	}
	var t models.TermsTemplate
	if err := config.DB.First(&t, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Template not found")
		return
	}
	c.JSON(http.StatusOK, t)
}

func CreateTermsTemplate(c *gin.Context) {
	var input TermsTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	var t models.TermsTemplate
	input.apply(&t)
	if t.Name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}
	if err := saveTerms(&t, true); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, t)
}

func UpdateTermsTemplate(c *gin.Context) {
	id, ok := parseID(c, "template")
	if !ok {
		return
	}
	var input TermsTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	var t models.TermsTemplate
	if err := config.DB.First(&t, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Template not found")
		return
	}
	input.apply(&t)
	if t.Name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}
	if err := saveTerms(&t, false); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, t)
}

func DeleteTermsTemplate(c *gin.Context) {
	id, ok := parseID(c, "template")
	if !ok {
		return
	}
	result := config.DB.Delete(&models.TermsTemplate{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
