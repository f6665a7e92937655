package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

type ReminderService struct {
	db     *gorm.DB
	sender Sender
	loc    *time.Location
	now    func() time.Time
}

func NewReminderService(db *gorm.DB, sender Sender, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{db: db, sender: sender, loc: loc, now: time.Now}
}

// StartScheduler runs the reminder job on the given cron schedule. The
// returned cron must be stopped on shutdown.
func (s *ReminderService) StartScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(schedule, func() {
		sent, failed, err := s.SendTomorrowReminders(context.Background())
		if err != nil {
			config.Log.Error("staff reminder run failed", zap.Error(err))
			return
		}
		config.Log.Info("staff reminder run finished", zap.Int("sent", sent), zap.Int("failed", failed))
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	config.Log.Info("staff reminder scheduler started", zap.String("schedule", schedule))
	return c, nil
}

// reminderTarget is one assignment on a service happening tomorrow.
type reminderTarget struct {
	assignment models.StaffAssignment
	service    ServiceRef
}

// SendTomorrowReminders texts every active member assigned to a service
// dated tomorrow. An assignment with a sent log is skipped; a failed one is
// tried again.
func (s *ReminderService) SendTomorrowReminders(ctx context.Context) (sent, failed int, err error) {
	tomorrow := s.now().In(s.loc).AddDate(0, 0, 1).Format(utils.DateLayout)

	targets, err := s.targets(ctx, tomorrow)
	if err != nil {
		return 0, 0, err
	}
	if len(targets) == 0 {
		return 0, 0, nil
	}

	template, err := s.template(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, t := range targets {
		member := t.assignment.StaffMember
		if member == nil || !member.IsActive || deref(member.Phone) == "" {
			continue
		}
		done, err := s.alreadySent(ctx, t.assignment.ID)
		if err != nil {
			return sent, failed, err
		}
		if done {
			continue
		}

		phone := *member.Phone
		body := ReminderMessage(template, *member, t.service)
		entry := models.ReminderLog{
			StaffMemberID: member.ID,
			AssignmentID:  t.assignment.ID,
			Phone:         phone,
			Message:       body,
			Status:        ReminderSent,
			SentAt:        s.now(),
		}

		sid, sendErr := s.sender.Send(ctx, phone, body)
		if sendErr != nil {
			entry.Status = ReminderFailed
			entry.ErrorMessage = sendErr.Error()
			failed++
			config.Log.Warn("staff reminder failed",
				zap.String("staff_member_id", member.ID.String()),
				zap.String("assignment_id", t.assignment.ID.String()),
				zap.Error(sendErr),
			)
		} else {
			entry.MessageSID = sid
			sent++
		}
		config.AppMetrics.IncrReminder(entry.Status)

		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			config.Log.Error("failed to log staff reminder",
				zap.String("assignment_id", t.assignment.ID.String()),
				zap.Error(err),
			)
		}
	}
	return sent, failed, nil
}

func (s *ReminderService) targets(ctx context.Context, date string) ([]reminderTarget, error) {
	db := s.db.WithContext(ctx)

	var events []models.CalendarEvent
	if err := db.Where("status = ? AND event_date = ?", models.CalendarConfirmed, date).Find(&events).Error; err != nil {
		return nil, err
	}
	var proposals []models.Proposal
	if err := db.Where("status = ? AND event_date = ?", models.ProposalAccepted, date).Find(&proposals).Error; err != nil {
		return nil, err
	}
	if len(events) == 0 && len(proposals) == 0 {
		return nil, nil
	}

	refs := make(map[uuid.UUID]ServiceRef, len(events)+len(proposals))
	var eventIDs, proposalIDs []uuid.UUID
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		refs[e.ID] = ServiceRef{ID: e.ID, Source: SourceManual, Title: e.Title, EventDate: e.EventDate, EventLocation: e.EventLocation, ClientName: e.ClientName}
	}
	for _, p := range proposals {
		proposalIDs = append(proposalIDs, p.ID)
		refs[p.ID] = ServiceRef{ID: p.ID, Source: SourceProposal, Title: ProposalServiceTitle(p), EventDate: deref(p.EventDate), EventLocation: p.EventLocation, ClientName: p.ClientName}
	}

	q := db.Preload("StaffMember")
	switch {
	case len(eventIDs) > 0 && len(proposalIDs) > 0:
		q = q.Where("calendar_event_id IN ? OR proposal_id IN ?", eventIDs, proposalIDs)
	case len(eventIDs) > 0:
		q = q.Where("calendar_event_id IN ?", eventIDs)
	default:
		q = q.Where("proposal_id IN ?", proposalIDs)
	}
	var assignments []models.StaffAssignment
	if err := q.Order("created_at ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	out := make([]reminderTarget, 0, len(assignments))
	for _, a := range assignments {
		if ref, ok := refFor(refs, a); ok {
			out = append(out, reminderTarget{assignment: a, service: ref})
		}
	}
	return out, nil
}

func (s *ReminderService) template(ctx context.Context) (string, error) {
	var t models.ReminderTemplate
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("updated_at DESC").First(&t).Error
	switch {
	case err == nil && strings.TrimSpace(t.Message) != "":
		return t.Message, nil
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		return models.DefaultStaffReminder, nil
	default:
		return "", err
	}
}

func (s *ReminderService) alreadySent(ctx context.Context, assignmentID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.ReminderLog{}).
		Where("assignment_id = ? AND status = ?", assignmentID, ReminderSent).
		Count(&n).Error
	return n > 0, err
}

// ReminderMessage fills the template placeholders. [Location] expands to
// " em <location>" or nothing.
func ReminderMessage(template string, member models.StaffMember, svc ServiceRef) string {
	location := ""
	if l := deref(svc.EventLocation); l != "" {
		location = " em " + l
	}
	return strings.NewReplacer(
		"[StaffName]", member.FirstName,
		"[EventDate]", utils.DisplayDate(svc.EventDate),
		"[EventTitle]", svc.Title,
		"[Location]", location,
	).Replace(template)
}
