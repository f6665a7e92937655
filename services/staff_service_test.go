package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHoursWorked(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2024, 6, 1, h, m, 0, 0, time.UTC) }
	cases := []struct {
		name       string
		start, end time.Time
		want       float64
	}{
		{"same day", day(18, 0), day(23, 30), 5.5},
		{"crosses midnight", day(23, 30), day(0, 15), 0.75},
		{"next day timestamp", day(23, 30), day(0, 15).AddDate(0, 0, 1), 0.75},
		{"rounds", day(9, 0), day(9, 20), 0.33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HoursWorked(tc.start, tc.end); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResolveHourlyRate(t *testing.T) {
	if got := ResolveHourlyRate(ptrFloat(15), ptrFloat(12), ptrFloat(10)); got != 15 {
		t.Fatalf("custom rate wins, got %v", got)
	}
	if got := ResolveHourlyRate(nil, ptrFloat(12), ptrFloat(10)); got != 12 {
		t.Fatalf("member rate before role default, got %v", got)
	}
	if got := ResolveHourlyRate(nil, nil, ptrFloat(10)); got != 10 {
		t.Fatalf("role default, got %v", got)
	}
	if got := ResolveHourlyRate(nil, nil, nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Pay(0.75, 12.5); got != 9.38 {
		t.Fatalf("expected 9.38, got %v", got)
	}
}

func TestCreateAssignmentFromClockPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, StaffRoleInput{Name: "Empregado de mesa", DefaultHourlyRate: ptrFloat(10)})
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	member, err := svc.CreateMember(ctx, StaffMemberInput{
		FirstName: "Joana",
		LastName:  "Silva",
		Roles:     &[]MemberRoleInput{{RoleID: role.ID, CustomHourlyRate: ptrFloat(12)}},
	})
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	if len(member.Roles) != 1 || member.Roles[0].Role == nil || member.Roles[0].Role.Name != "Empregado de mesa" {
		t.Fatalf("expected role preloaded, got %+v", member.Roles)
	}
	event := seedEvent(t, db, "Jantar", "2024-06-01")

	a, err := svc.CreateAssignment(ctx, AssignmentInput{
		StaffMemberID:   member.ID,
		RoleID:          &role.ID,
		CalendarEventID: &event.ID,
		ServiceDate:     "2024-06-01",
		ClockIn:         "23:30",
		ClockOut:        "00:15",
	})
	if err != nil {
		t.Fatalf("assignment: %v", err)
	}
	wantEnd := time.Date(2024, 6, 2, 0, 15, 0, 0, time.UTC)
	if a.EndTime == nil || !a.EndTime.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, a.EndTime)
	}
	if a.HoursWorked == nil || *a.HoursWorked != 0.75 {
		t.Fatalf("expected 0.75h, got %v", a.HoursWorked)
	}
	if a.HourlyRate != 12 || a.TotalPay == nil || *a.TotalPay != 9 {
		t.Fatalf("expected member rate 12 and pay 9, got %v %v", a.HourlyRate, a.TotalPay)
	}

	updated, err := svc.UpdateAssignment(ctx, a.ID, AssignmentInput{
		RoleID:           &role.ID,
		ServiceDate:      "2024-06-01",
		ClockIn:          "20:00",
		ClockOut:         "00:00",
		CustomHourlyRate: ptrFloat(15),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.HoursWorked != 4 || updated.HourlyRate != 15 || *updated.TotalPay != 60 {
		t.Fatalf("expected recomputed pay, got %v %v %v", *updated.HoursWorked, updated.HourlyRate, *updated.TotalPay)
	}
	if updated.CalendarEventID == nil || *updated.CalendarEventID != event.ID {
		t.Fatal("update must keep the service link")
	}
}

func TestCreateAssignmentWithoutEndLeavesPayOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	member := seedMember(t, db, "Rui", "")
	start := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	a, err := svc.CreateAssignment(context.Background(), AssignmentInput{StaffMemberID: member.ID, StartTime: &start})
	if err != nil {
		t.Fatalf("assignment: %v", err)
	}
	if a.HoursWorked != nil || a.TotalPay != nil {
		t.Fatalf("expected open assignment, got %v %v", a.HoursWorked, a.TotalPay)
	}

	var verr *ValidationError
	if _, err := svc.CreateAssignment(context.Background(), AssignmentInput{}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeactivateMemberIsSoft(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	member := seedMember(t, db, "Rui", "")

	if err := svc.DeactivateMember(context.Background(), member.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	members, err := svc.ListMembers(context.Background())
	if err != nil || len(members) != 1 || members[0].IsActive {
		t.Fatalf("expected member kept inactive, got %+v %v", members, err)
	}
}

func TestSummaryGroupsByMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	ctx := context.Background()
	role, _ := svc.CreateRole(ctx, StaffRoleInput{Name: "Cozinheiro", DefaultHourlyRate: ptrFloat(10)})
	bruno := seedMember(t, db, "Bruno", "")
	ana := seedMember(t, db, "Ana", "")
	event := seedEvent(t, db, "Jantar", "2024-06-01")

	for _, in := range []AssignmentInput{
		{StaffMemberID: bruno.ID, RoleID: &role.ID, CalendarEventID: &event.ID, ServiceDate: "2024-06-01", ClockIn: "18:00", ClockOut: "22:00"},
		{StaffMemberID: bruno.ID, RoleID: &role.ID, CalendarEventID: &event.ID, ServiceDate: "2024-06-15", ClockIn: "10:00", ClockOut: "12:30"},
		{StaffMemberID: ana.ID, RoleID: &role.ID, ServiceDate: "2024-06-20", ClockIn: "09:00", ClockOut: "10:00"},
		{StaffMemberID: ana.ID, RoleID: &role.ID, ServiceDate: "2024-07-01", ClockIn: "09:00", ClockOut: "10:00"},
	} {
		if _, err := svc.CreateAssignment(ctx, in); err != nil {
			t.Fatalf("assignment: %v", err)
		}
	}

	sum, err := svc.Summary(ctx, "2024-06")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.StaffCount != 2 || sum.TotalHours != 7.5 || sum.TotalPay != 75 {
		t.Fatalf("unexpected totals %+v", sum)
	}
	if sum.Staff[0].Name != "Ana" || sum.Staff[1].Name != "Bruno" {
		t.Fatalf("expected staff sorted by name, got %s, %s", sum.Staff[0].Name, sum.Staff[1].Name)
	}
	b := sum.Staff[1]
	if b.TotalHours != 6.5 || len(b.Services) != 2 || b.Services[0].Role != "Cozinheiro" {
		t.Fatalf("unexpected member summary %+v", b)
	}
	if b.Services[0].Title == nil || *b.Services[0].Title != "Jantar" {
		t.Fatalf("expected service title, got %v", b.Services[0].Title)
	}

	var verr *ValidationError
	if _, err := svc.Summary(ctx, ""); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpcomingAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	svc.now = fixedClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	member := seedMember(t, db, "Joana", "")

	past := seedEvent(t, db, "Passado", "2025-06-01")
	later := seedEvent(t, db, "Depois", "2025-07-01")
	proposal := seedAcceptedProposal(t, db, "PROP-1", "2025-06-20")
	for _, in := range []AssignmentInput{
		{StaffMemberID: member.ID, CalendarEventID: &past.ID},
		{StaffMemberID: member.ID, CalendarEventID: &later.ID},
		{StaffMemberID: member.ID, ProposalID: &proposal.ID},
	} {
		if _, err := svc.CreateAssignment(ctx, in); err != nil {
			t.Fatalf("assignment: %v", err)
		}
	}

	upcoming, err := svc.Upcoming(ctx)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	list := upcoming[member.ID.String()]
	if len(list) != 2 || list[0].EventDate != "2025-06-20" || list[0].Title != "Evento Corporativo" || list[1].Title != "Depois" {
		t.Fatalf("unexpected upcoming %+v", list)
	}

	history, err := svc.History(ctx, member.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(history))
	}
	for _, h := range history {
		if h.Service == nil {
			t.Fatalf("missing service ref for %s", h.ID)
		}
	}
}

func TestRoleCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewStaffService(db, time.UTC)
	ctx := context.Background()

	first, _ := svc.CreateRole(ctx, StaffRoleInput{Name: "Chef"})
	second, err := svc.CreateRole(ctx, StaffRoleInput{Name: "Copeiro", DefaultHourlyRate: ptrFloat(8)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.SortOrder != first.SortOrder+1 {
		t.Fatalf("expected appended sort order, got %d after %d", second.SortOrder, first.SortOrder)
	}
	if _, err := svc.UpdateRole(ctx, second.ID, StaffRoleInput{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
	updated, err := svc.UpdateRole(ctx, second.ID, StaffRoleInput{DefaultHourlyRate: ptrFloat(9.5)})
	if err != nil || updated.DefaultHourlyRate != 9.5 || updated.Name != "Copeiro" {
		t.Fatalf("unexpected update %+v %v", updated, err)
	}
	if err := svc.DeleteRole(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteRole(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
