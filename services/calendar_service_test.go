package services

import (
	"context"
	"errors"
	"testing"

	"msilva-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, first, phone string) models.StaffMember {
	t.Helper()
	m := models.StaffMember{FirstName: first, IsActive: true}
	if phone != "" {
		m.Phone = &phone
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func seedEvent(t *testing.T, db *gorm.DB, title, date string) models.CalendarEvent {
	t.Helper()
	e := models.CalendarEvent{Title: title, EventDate: date, ClientName: "Cliente", Status: models.CalendarConfirmed}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return e
}

func seedAcceptedProposal(t *testing.T, db *gorm.DB, ref, date string) models.Proposal {
	t.Helper()
	p := models.Proposal{
		Status:          models.ProposalAccepted,
		ReferenceNumber: ref,
		ClientName:      "Marta",
		EventType:       models.EventCorporate,
		EventDate:       &date,
		Language:        models.LangPT,
		Subtotal:        1000,
		Total:           1230,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed proposal: %v", err)
	}
	return p
}

func TestCalendarListMergesSources(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, "Jantar", "2025-06-10")
	seedAcceptedProposal(t, db, "PROP-1", "2025-06-05")
	seedAcceptedProposal(t, db, "PROP-2", "2025-08-01")
	cancelled := seedEvent(t, db, "Almoço", "2025-06-07")
	db.Model(&cancelled).Update("status", models.CalendarCancelled)

	entries, err := NewCalendarService(db).List(context.Background(), "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != SourceProposal || entries[0].Title != "Evento Corporativo" || *entries[0].Total != 1230 {
		t.Fatalf("unexpected proposal entry %+v", entries[0])
	}
	if entries[1].Source != SourceManual || entries[1].Title != "Jantar" {
		t.Fatalf("unexpected manual entry %+v", entries[1])
	}

	if _, err := NewCalendarService(db).List(context.Background(), "06/2025", ""); err == nil {
		t.Fatal("expected bad date to be rejected")
	}
}

func TestCancelReleasesOnlyThatServicesStaff(t *testing.T) {
	db := newTestDB(t)
	member := seedMember(t, db, "Joana", "")
	event := seedEvent(t, db, "Jantar", "2025-06-10")
	other := seedEvent(t, db, "Almoço", "2025-06-11")
	proposal := seedAcceptedProposal(t, db, "PROP-1", "2025-06-12")

	for _, a := range []models.StaffAssignment{
		{StaffMemberID: member.ID, CalendarEventID: &event.ID},
		{StaffMemberID: member.ID, CalendarEventID: &event.ID},
		{StaffMemberID: member.ID, CalendarEventID: &other.ID},
		{StaffMemberID: member.ID, ProposalID: &proposal.ID},
	} {
		if err := db.Create(&a).Error; err != nil {
			t.Fatalf("seed assignment: %v", err)
		}
	}

	svc := NewCalendarService(db)
	if err := svc.Cancel(context.Background(), SourceManual, event.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var stored models.CalendarEvent
	db.First(&stored, "id = ?", event.ID)
	if stored.Status != models.CalendarCancelled {
		t.Fatalf("expected cancelled, got %s", stored.Status)
	}
	var remaining int64
	db.Model(&models.StaffAssignment{}).Count(&remaining)
	if remaining != 2 {
		t.Fatalf("expected 2 assignments left, got %d", remaining)
	}

	if err := svc.Cancel(context.Background(), SourceProposal, proposal.ID); err != nil {
		t.Fatalf("cancel proposal: %v", err)
	}
	var p models.Proposal
	db.First(&p, "id = ?", proposal.ID)
	if p.Status != models.ProposalCancelled {
		t.Fatalf("expected proposal cancelled, got %s", p.Status)
	}
	db.Model(&models.StaffAssignment{}).Count(&remaining)
	if remaining != 1 {
		t.Fatalf("expected 1 assignment left, got %d", remaining)
	}
}

func TestCancelErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db)

	if err := svc.Cancel(context.Background(), "google", uuid.New()); !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
	if err := svc.Cancel(context.Background(), SourceManual, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
