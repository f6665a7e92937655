package services

import (
	"context"
	"sort"
	"time"

	"msilva-backend/config"
	"msilva-backend/document"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	SourceManual   = "manual"
	SourceProposal = "proposal"
)

// CalendarEntry is one booked service, either entered by hand or coming
// from an accepted proposal.
type CalendarEntry struct {
	ID            uuid.UUID        `json:"id"`
	Source        string           `json:"source"`
	Title         string           `json:"title"`
	EventDate     string           `json:"eventDate"`
	EventTime     *string          `json:"eventTime"`
	EventEndDate  *string          `json:"eventEndDate"`
	ClientName    string           `json:"clientName"`
	ClientEmail   *string          `json:"clientEmail"`
	ClientPhone   *string          `json:"clientPhone"`
	ClientCompany *string          `json:"clientCompany,omitempty"`
	ClientNIF     *string          `json:"clientNif,omitempty"`
	EventLocation *string          `json:"eventLocation"`
	GuestCount    *int             `json:"guestCount"`
	EventType     models.EventType `json:"eventType"`
	Notes         *string          `json:"notes"`
	Status        string           `json:"status"`

	ProposalID      *uuid.UUID `json:"proposalId,omitempty"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
	Total           *float64   `json:"total,omitempty"`
}

type CalendarService struct {
	db *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// List merges confirmed manual events with accepted, dated proposals. start
// and end are inclusive YYYY-MM-DD bounds and may be empty.
func (s *CalendarService) List(ctx context.Context, start, end string) ([]CalendarEntry, error) {
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(utils.DateLayout, d); err != nil {
			return nil, invalidf("Invalid date %q, expected YYYY-MM-DD", d)
		}
	}

	manual := s.db.WithContext(ctx).Where("status = ?", models.CalendarConfirmed)
	proposals := s.db.WithContext(ctx).
		Where("status = ?", models.ProposalAccepted).
		Where("event_date IS NOT NULL AND event_date <> ''")
	if start != "" {
		manual = manual.Where("event_date >= ?", start)
		proposals = proposals.Where("event_date >= ?", start)
	}
	if end != "" {
		manual = manual.Where("event_date <= ?", end)
		proposals = proposals.Where("event_date <= ?", end)
	}

	var events []models.CalendarEvent
	if err := manual.Find(&events).Error; err != nil {
		return nil, err
	}
	var accepted []models.Proposal
	if err := proposals.Find(&accepted).Error; err != nil {
		return nil, err
	}

	entries := make([]CalendarEntry, 0, len(events)+len(accepted))
	for _, e := range events {
		entries = append(entries, CalendarEntry{
			ID:            e.ID,
			Source:        SourceManual,
			Title:         e.Title,
			EventDate:     e.EventDate,
			EventTime:     e.EventTime,
			EventEndDate:  e.EventEndDate,
			ClientName:    e.ClientName,
			ClientEmail:   e.ClientEmail,
			ClientPhone:   e.ClientPhone,
			ClientCompany: e.ClientCompany,
			ClientNIF:     e.ClientNIF,
			EventLocation: e.EventLocation,
			GuestCount:    e.GuestCount,
			EventType:     e.EventType,
			Notes:         e.Notes,
			Status:        e.Status,
		})
	}
	for _, p := range accepted {
		entries = append(entries, proposalEntry(p))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EventDate != entries[j].EventDate {
			return entries[i].EventDate < entries[j].EventDate
		}
		return entries[i].Title < entries[j].Title
	})
	return entries, nil
}

func proposalEntry(p models.Proposal) CalendarEntry {
	id := p.ID
	guests := p.GuestCount
	total := p.Total
	if total == 0 {
		total = p.Subtotal
	}
	return CalendarEntry{
		ID:              p.ID,
		Source:          SourceProposal,
		Title:           ProposalServiceTitle(p),
		EventDate:       deref(p.EventDate),
		ClientName:      p.ClientName,
		ClientEmail:     p.ClientEmail,
		ClientPhone:     p.ClientPhone,
		EventLocation:   p.EventLocation,
		GuestCount:      &guests,
		EventType:       p.EventType,
		Notes:           p.EventNotes,
		Status:          models.CalendarConfirmed,
		ProposalID:      &id,
		ReferenceNumber: p.ReferenceNumber,
		Total:           &total,
	}
}

// ProposalServiceTitle is how a proposal is named on schedules: its event
// title, else the PT event label.
func ProposalServiceTitle(p models.Proposal) string {
	if t := deref(p.EventTitle); t != "" {
		return t
	}
	return document.CalendarEventLabel(p.EventType, deref(p.EventTypeCustomPt))
}

// Cancel marks a manual event or a proposal cancelled and releases every
// staff assignment keyed to it.
func (s *CalendarService) Cancel(ctx context.Context, source string, id uuid.UUID) error {
	var target any
	var column string
	switch source {
	case SourceManual:
		target, column = &models.CalendarEvent{}, "calendar_event_id"
	case SourceProposal:
		target, column = &models.Proposal{}, "proposal_id"
	default:
		return ErrInvalidSource
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	res := tx.Model(target).Where("id = ?", id).Update("status", "cancelled")
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	released := tx.Where(column+" = ?", id).Delete(&models.StaffAssignment{})
	if released.Error != nil {
		tx.Rollback()
		return released.Error
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	config.Log.Info("service cancelled",
		zap.String("source", source),
		zap.String("id", id.String()),
		zap.Int64("assignments_released", released.RowsAffected),
	)
	return nil
}

// Delete removes a manual event and its assignments.
func (s *CalendarService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.CalendarEvent{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("calendar_event_id = ?", id).Delete(&models.StaffAssignment{}).Error
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
