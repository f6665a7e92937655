package controllers

import (
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MomentInput struct {
	Key       string `json:"key"`
	TitlePt   string `json:"titlePt"`
	TitleEn   string `json:"titleEn"`
	SortOrder *int   `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

type MomentItemInput struct {
	ItemID    uuid.UUID `json:"itemId"`
	IsDefault bool      `json:"isDefault"`
	SortOrder *int      `json:"sortOrder"`
}

type ReplaceMomentItemsInput struct {
	MomentID string            `json:"momentId"`
	Items    []MomentItemInput `json:"items"`
}

// GetMoments lists moments with their catalog items in order.
func GetMoments(c *gin.Context) {
	var moments []models.ProposalMoment
	err := config.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Items.Item").
		Order("sort_order ASC").
		Find(&moments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, moments)
}

func CreateMoment(c *gin.Context) {
	var input MomentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	moment := models.ProposalMoment{
		Key:      strings.TrimSpace(input.Key),
		TitlePt:  strings.TrimSpace(input.TitlePt),
		TitleEn:  strings.TrimSpace(input.TitleEn),
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if moment.Key == "" || moment.TitlePt == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "key and titlePt are required")
		return
	}
	if input.SortOrder != nil {
		moment.SortOrder = *input.SortOrder
	}
	if err := config.DB.Create(&moment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, moment)
}

// ReplaceMomentItems swaps a moment's item list in one transaction.
func ReplaceMomentItems(c *gin.Context) {
	var input ReplaceMomentItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	momentID, ok := utils.ParseUUID(input.MomentID)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid momentId")
		return
	}

	rows := make([]models.MomentItem, 0, len(input.Items))
	for i, it := range input.Items {
		row := models.MomentItem{MomentID: momentID, ItemID: it.ItemID, IsDefault: it.IsDefault, SortOrder: i + 1}
		if it.SortOrder != nil {
			row.SortOrder = *it.SortOrder
		}
		rows = append(rows, row)
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("moment_id = ?", momentID).Delete(&models.MomentItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
