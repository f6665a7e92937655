package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReminderTemplateInput struct {
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// GetReminderTemplate returns the active staff reminder text, falling back to
// the built-in message.
func GetReminderTemplate(c *gin.Context) {
	var template models.ReminderTemplate
	err := config.DB.Where("is_active = ?", true).Order("updated_at DESC").First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, models.ReminderTemplate{Message: models.DefaultStaffReminder, IsActive: true})
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdateReminderTemplate replaces the reminder text. Only one template is
// kept active.
func UpdateReminderTemplate(c *gin.Context) {
	var input ReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Message is required")
		return
	}

	template := models.ReminderTemplate{Message: message, IsActive: true}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("1 = 1").Delete(&models.ReminderTemplate{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}
	if err := tx.Create(&template).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// GetReminderLogs lists reminder attempts, newest first (?limit, default 50).
func GetReminderLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	var logs []models.ReminderLog
	if err := config.DB.Order("sent_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RunReminders sends tomorrow's staff reminders immediately.
func RunReminders(c *gin.Context) {
	if sms == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "SMS reminders are not configured")
		return
	}
	svc := services.NewReminderService(config.DB, sms, settings.Location())
	sent, failed, err := svc.SendTomorrowReminders(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}
