package controllers

import (
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	NamePt        *string `json:"namePt"`
	NameEn        *string `json:"nameEn"`
	DescriptionPt *string `json:"descriptionPt"`
	DescriptionEn *string `json:"descriptionEn"`
	Icon          *string `json:"icon"`
	SortOrder     *int    `json:"sortOrder"`
	IsActive      *bool   `json:"isActive"`
}

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Order("sort_order ASC").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory appends the category after the current last one unless a
// sort order is given.
func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cat := models.Category{IsActive: true}
	applyCategory(&cat, input)
	if cat.NamePt == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "namePt is required")
		return
	}
	if input.SortOrder == nil {
		var max *int
		if err := config.DB.Model(&models.Category{}).Select("MAX(sort_order)").Scan(&max).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if max != nil {
			cat.SortOrder = *max + 1
		}
	}

	if err := config.DB.Create(&cat).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var cat models.Category
	if err := config.DB.First(&cat, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Category not found")
		return
	}
	applyCategory(&cat, input)
	if cat.NamePt == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "namePt is required")
		return
	}
	if err := config.DB.Save(&cat).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory detaches its services before removing it.
func DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Service{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	result := tx.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func applyCategory(cat *models.Category, in CategoryInput) {
	if in.NamePt != nil {
		cat.NamePt = strings.TrimSpace(*in.NamePt)
	}
	if in.NameEn != nil {
		cat.NameEn = strings.TrimSpace(*in.NameEn)
	}
	if in.DescriptionPt != nil {
		cat.DescriptionPt = *in.DescriptionPt
	}
	if in.DescriptionEn != nil {
		cat.DescriptionEn = *in.DescriptionEn
	}
	if in.Icon != nil {
		cat.Icon = *in.Icon
	}
	if in.SortOrder != nil {
		cat.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
}
