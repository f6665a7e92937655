package controllers

import (
	"errors"
	"net/http"
	"strings"

	"msilva-backend/config"
	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	settings = config.Settings{DefaultVATRate: 23, Timezone: "UTC"}
	// sms is nil when Twilio is not configured.
	sms services.Sender
)

// Configure hands the loaded settings and the SMS sender to the handlers.
func Configure(s config.Settings, sender services.Sender) {
	settings = s
	sms = sender
}

func proposalService() *services.ProposalService {
	return services.NewProposalService(config.DB, settings.DefaultVATRate)
}

func calendarService() *services.CalendarService {
	return services.NewCalendarService(config.DB)
}

func staffService() *services.StaffService {
	return services.NewStaffService(config.DB, settings.Location())
}

// parseID reads the :id path param, answering 400 "Invalid <entity> ID" when
// it is not a UUID.
func parseID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+entity+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalID parses an optional UUID query param. Blank means absent.
func optionalID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, ok := utils.ParseUUID(raw)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// respondServiceError maps service errors onto status codes. notFound is the
// message used for 404s.
func respondServiceError(c *gin.Context, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, services.ErrInvalidSource):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid source")
	case errors.Is(err, services.ErrNothingToUpdate):
		utils.RespondWithError(c, http.StatusBadRequest, "No fields to update")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// trimmed returns nil for blank text so optional columns store NULL.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
