package controllers

import (
	"net/http"
	"strings"
	"time"

	"msilva-backend/config"
	"msilva-backend/document"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
)

type CalendarEventInput struct {
	Title         string  `json:"title"`
	EventDate     string  `json:"eventDate"`
	EventTime     *string `json:"eventTime"`
	EventEndDate  *string `json:"eventEndDate"`
	ClientName    string  `json:"clientName"`
	ClientEmail   *string `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone"`
	ClientCompany *string `json:"clientCompany"`
	ClientNIF     *string `json:"clientNif"`
	EventLocation *string `json:"eventLocation"`
	GuestCount    *int    `json:"guestCount"`
	EventType     string  `json:"eventType"`
	Notes         *string `json:"notes"`
}

type CancelInput struct {
	Source string `json:"source"`
	ID     string `json:"id"`
}

func (in CalendarEventInput) apply(e *models.CalendarEvent) string {
	e.Title = strings.TrimSpace(in.Title)
	e.EventDate = strings.TrimSpace(in.EventDate)
	if e.Title == "" || e.EventDate == "" {
		return "title and eventDate are required"
	}
	if _, err := time.Parse(utils.DateLayout, e.EventDate); err != nil {
		return "Invalid eventDate, expected YYYY-MM-DD"
	}
	if end := trimmed(in.EventEndDate); end != nil {
		if _, err := time.Parse(utils.DateLayout, *end); err != nil {
			return "Invalid eventEndDate, expected YYYY-MM-DD"
		}
		e.EventEndDate = end
	} else {
		e.EventEndDate = nil
	}
	if clock := trimmed(in.EventTime); clock != nil {
		if _, err := time.Parse(utils.ClockLayout, *clock); err != nil {
			return "Invalid eventTime, expected HH:MM"
		}
		e.EventTime = clock
	} else {
		e.EventTime = nil
	}
	if nif := trimmed(in.ClientNIF); nif != nil {
		if !utils.ValidateNIF(*nif) {
			return "Invalid NIF"
		}
		normalized := utils.NormalizeNIF(*nif)
		e.ClientNIF = &normalized
	} else {
		e.ClientNIF = nil
	}
	if in.GuestCount != nil && *in.GuestCount < 0 {
		return "Guest count cannot be negative"
	}

	e.ClientName = strings.TrimSpace(in.ClientName)
	e.ClientEmail = trimmed(in.ClientEmail)
	e.ClientPhone = trimmed(in.ClientPhone)
	e.ClientCompany = trimmed(in.ClientCompany)
	e.EventLocation = trimmed(in.EventLocation)
	e.GuestCount = in.GuestCount
	e.Notes = trimmed(in.Notes)
	e.EventType, _ = document.ParseEventType(in.EventType)
	return ""
}

// GetCalendarEvents returns the merged calendar between ?start and ?end.
func GetCalendarEvents(c *gin.Context) {
	entries, err := calendarService().List(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func CreateCalendarEvent(c *gin.Context) {
	var input CalendarEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	event := models.CalendarEvent{Status: models.CalendarConfirmed}
	if msg := input.apply(&event); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if err := config.DB.Create(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, event)
}

func UpdateCalendarEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	var input CalendarEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var event models.CalendarEvent
	if err := config.DB.First(&event, "id = ?", id).Error; err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	if msg := input.apply(&event); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}
	if err := config.DB.Save(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, event)
}

func DeleteCalendarEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	if err := calendarService().Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CancelCalendarEvent cancels a manual event or a proposal and releases its
// staff.
func CancelCalendarEvent(c *gin.Context) {
	var input CancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	id, ok := utils.ParseUUID(input.ID)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID")
		return
	}
	if err := calendarService().Cancel(c.Request.Context(), input.Source, id); err != nil {
		respondServiceError(c, err, "Event not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
