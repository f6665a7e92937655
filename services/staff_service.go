package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"msilva-backend/config"
	"msilva-backend/models"
	"msilva-backend/pricing"
	"msilva-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StaffService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewStaffService(db *gorm.DB, loc *time.Location) *StaffService {
	if loc == nil {
		loc = time.UTC
	}
	return &StaffService{db: db, loc: loc, now: time.Now}
}

type MemberRoleInput struct {
	RoleID           uuid.UUID `json:"roleId"`
	CustomHourlyRate *float64  `json:"customHourlyRate"`
}

type StaffMemberInput struct {
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	NIF       string             `json:"nif"`
	Notes     string             `json:"notes"`
	IsActive  *bool              `json:"isActive"`
	Roles     *[]MemberRoleInput `json:"roles"`
}

func (in StaffMemberInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return invalidf("First name is required")
	}
	if nif := strings.TrimSpace(in.NIF); nif != "" && !utils.ValidateNIF(nif) {
		return invalidf("Invalid NIF")
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" && !utils.ValidatePhone(phone) {
		return invalidf("Invalid phone number")
	}
	return nil
}

func (in StaffMemberInput) apply(m *models.StaffMember) {
	m.FirstName = strings.TrimSpace(in.FirstName)
	m.LastName = strings.TrimSpace(in.LastName)
	m.Phone = optionalText(in.Phone)
	m.Email = optionalText(in.Email)
	m.NIF = optionalText(utils.NormalizeNIF(in.NIF))
	m.Notes = optionalText(in.Notes)
	m.IsActive = in.IsActive == nil || *in.IsActive
}

// ListMembers returns every member with roles, ordered by first name.
func (s *StaffService) ListMembers(ctx context.Context) ([]models.StaffMember, error) {
	var members []models.StaffMember
	err := s.db.WithContext(ctx).
		Preload("Roles.Role").
		Order("first_name ASC").
		Find(&members).Error
	return members, err
}

func (s *StaffService) CreateMember(ctx context.Context, in StaffMemberInput) (*models.StaffMember, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var m models.StaffMember
	in.apply(&m)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if in.Roles == nil {
			return nil
		}
		return replaceRoles(tx, m.ID, *in.Roles)
	})
	if err != nil {
		return nil, err
	}
	return s.member(ctx, m.ID)
}

// UpdateMember rewrites the member; roles are replaced only when given.
func (s *StaffService) UpdateMember(ctx context.Context, id uuid.UUID, in StaffMemberInput) (*models.StaffMember, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.StaffMember
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		in.apply(&m)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if in.Roles == nil {
			return nil
		}
		if err := tx.Where("staff_member_id = ?", id).Delete(&models.StaffMemberRole{}).Error; err != nil {
			return err
		}
		return replaceRoles(tx, id, *in.Roles)
	})
	if err != nil {
		return nil, err
	}
	return s.member(ctx, id)
}

// DeactivateMember is a soft delete; history keeps pointing at the member.
func (s *StaffService) DeactivateMember(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.StaffMember{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *StaffService) member(ctx context.Context, id uuid.UUID) (*models.StaffMember, error) {
	var m models.StaffMember
	if err := s.db.WithContext(ctx).Preload("Roles.Role").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func replaceRoles(tx *gorm.DB, memberID uuid.UUID, roles []MemberRoleInput) error {
	if len(roles) == 0 {
		return nil
	}
	rows := make([]models.StaffMemberRole, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, models.StaffMemberRole{
			StaffMemberID:    memberID,
			StaffRoleID:      r.RoleID,
			CustomHourlyRate: r.CustomHourlyRate,
		})
	}
	return tx.Create(&rows).Error
}

// AssignmentInput takes either full timestamps or a service date with
// HH:MM clock times.
type AssignmentInput struct {
	StaffMemberID    uuid.UUID  `json:"staffMemberId"`
	RoleID           *uuid.UUID `json:"roleId"`
	CalendarEventID  *uuid.UUID `json:"calendarEventId"`
	ProposalID       *uuid.UUID `json:"proposalId"`
	StartTime        *time.Time `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	ServiceDate      string     `json:"serviceDate"`
	ClockIn          string     `json:"clockIn"`
	ClockOut         string     `json:"clockOut"`
	CustomHourlyRate *float64   `json:"customHourlyRate"`
	Notes            string     `json:"notes"`
}

func (s *StaffService) times(in AssignmentInput) (start, end *time.Time, err error) {
	if in.ServiceDate == "" || in.ClockIn == "" {
		return in.StartTime, in.EndTime, nil
	}
	st, err := utils.BuildTimestamp(in.ServiceDate, in.ClockIn, s.loc)
	if err != nil {
		return nil, nil, invalidf("Invalid clock in: %v", err)
	}
	start = &st
	if in.ClockOut != "" {
		et, err := utils.BuildEndTimestamp(in.ServiceDate, in.ClockIn, in.ClockOut, s.loc)
		if err != nil {
			return nil, nil, invalidf("Invalid clock out: %v", err)
		}
		end = &et
	}
	return start, end, nil
}

// price fills hours, rate and pay on an assignment from its times and the
// rate chain.
func (s *StaffService) price(tx *gorm.DB, a *models.StaffAssignment) error {
	var memberRate, roleRate *float64
	if a.StaffRoleID != nil {
		var mr models.StaffMemberRole
		err := tx.Where("staff_member_id = ? AND staff_role_id = ?", a.StaffMemberID, *a.StaffRoleID).First(&mr).Error
		switch {
		case err == nil:
			memberRate = mr.CustomHourlyRate
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var role models.StaffRole
		err = tx.First(&role, "id = ?", *a.StaffRoleID).Error
		switch {
		case err == nil:
			roleRate = &role.DefaultHourlyRate
		case errors.Is(err, gorm.ErrRecordNotFound):
			return invalidf("Staff role not found")
		default:
			return err
		}
	}
	a.HourlyRate = ResolveHourlyRate(a.CustomHourlyRate, memberRate, roleRate)

	a.HoursWorked, a.TotalPay = nil, nil
	if a.StartTime != nil && a.EndTime != nil {
		hours := HoursWorked(*a.StartTime, *a.EndTime)
		pay := Pay(hours, a.HourlyRate)
		a.HoursWorked, a.TotalPay = &hours, &pay
	}
	return nil
}

func (s *StaffService) CreateAssignment(ctx context.Context, in AssignmentInput) (*models.StaffAssignment, error) {
	if in.StaffMemberID == uuid.Nil {
		return nil, invalidf("staffMemberId is required")
	}
	start, end, err := s.times(in)
	if err != nil {
		return nil, err
	}
	a := models.StaffAssignment{
		StaffMemberID:    in.StaffMemberID,
		StaffRoleID:      in.RoleID,
		CalendarEventID:  in.CalendarEventID,
		ProposalID:       in.ProposalID,
		StartTime:        start,
		EndTime:          end,
		CustomHourlyRate: in.CustomHourlyRate,
		Notes:            optionalText(in.Notes),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.StaffMember
		if err := tx.First(&member, "id = ?", in.StaffMemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidf("Staff member not found")
			}
			return err
		}
		if err := s.price(tx, &a); err != nil {
			return err
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		return nil, err
	}
	config.Log.Info("staff assigned",
		zap.String("assignment_id", a.ID.String()),
		zap.String("staff_member_id", a.StaffMemberID.String()),
	)
	return s.assignment(ctx, a.ID)
}

// UpdateAssignment replaces times, role, rate and notes and recomputes pay.
// The member and the service it belongs to do not change.
func (s *StaffService) UpdateAssignment(ctx context.Context, id uuid.UUID, in AssignmentInput) (*models.StaffAssignment, error) {
	start, end, err := s.times(in)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.StaffAssignment
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		a.StaffRoleID = in.RoleID
		a.StartTime, a.EndTime = start, end
		a.CustomHourlyRate = in.CustomHourlyRate
		a.Notes = optionalText(in.Notes)
		if err := s.price(tx, &a); err != nil {
			return err
		}
		return tx.Save(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return s.assignment(ctx, id)
}

func (s *StaffService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.StaffAssignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAssignments filters by manual event and/or proposal, oldest first.
func (s *StaffService) ListAssignments(ctx context.Context, eventID, proposalID *uuid.UUID) ([]models.StaffAssignment, error) {
	q := s.db.WithContext(ctx).Preload("StaffMember").Preload("StaffRole")
	if eventID != nil {
		q = q.Where("calendar_event_id = ?", *eventID)
	}
	if proposalID != nil {
		q = q.Where("proposal_id = ?", *proposalID)
	}
	var out []models.StaffAssignment
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *StaffService) assignment(ctx context.Context, id uuid.UUID) (*models.StaffAssignment, error) {
	var a models.StaffAssignment
	err := s.db.WithContext(ctx).Preload("StaffMember").Preload("StaffRole").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ServiceRef names the service an assignment belongs to.
type ServiceRef struct {
	ID            uuid.UUID `json:"id"`
	Source        string    `json:"source"`
	Title         string    `json:"title"`
	EventDate     string    `json:"eventDate"`
	EventLocation *string   `json:"eventLocation"`
	ClientName    string    `json:"clientName"`
}

// serviceRefs resolves the services behind a set of assignments. Dates
// before minDate are skipped when minDate is set.
func (s *StaffService) serviceRefs(ctx context.Context, assignments []models.StaffAssignment, minDate string) (map[uuid.UUID]ServiceRef, error) {
	var manualIDs, proposalIDs []uuid.UUID
	for _, a := range assignments {
		switch {
		case a.CalendarEventID != nil:
			manualIDs = append(manualIDs, *a.CalendarEventID)
		case a.ProposalID != nil:
			proposalIDs = append(proposalIDs, *a.ProposalID)
		}
	}

	refs := make(map[uuid.UUID]ServiceRef)
	if len(manualIDs) > 0 {
		q := s.db.WithContext(ctx).Where("id IN ?", manualIDs)
		if minDate != "" {
			q = q.Where("event_date >= ?", minDate)
		}
		var events []models.CalendarEvent
		if err := q.Find(&events).Error; err != nil {
			return nil, err
		}
		for _, e := range events {
			refs[e.ID] = ServiceRef{
				ID:            e.ID,
				Source:        SourceManual,
				Title:         e.Title,
				EventDate:     e.EventDate,
				EventLocation: e.EventLocation,
				ClientName:    e.ClientName,
			}
		}
	}
	if len(proposalIDs) > 0 {
		q := s.db.WithContext(ctx).Where("id IN ?", proposalIDs)
		if minDate != "" {
			q = q.Where("event_date >= ?", minDate)
		}
		var proposals []models.Proposal
		if err := q.Find(&proposals).Error; err != nil {
			return nil, err
		}
		for _, p := range proposals {
			refs[p.ID] = ServiceRef{
				ID:            p.ID,
				Source:        SourceProposal,
				Title:         ProposalServiceTitle(p),
				EventDate:     deref(p.EventDate),
				EventLocation: p.EventLocation,
				ClientName:    p.ClientName,
			}
		}
	}
	return refs, nil
}

func refFor(refs map[uuid.UUID]ServiceRef, a models.StaffAssignment) (ServiceRef, bool) {
	switch {
	case a.CalendarEventID != nil:
		r, ok := refs[*a.CalendarEventID]
		return r, ok
	case a.ProposalID != nil:
		r, ok := refs[*a.ProposalID]
		return r, ok
	}
	return ServiceRef{}, false
}

type AssignmentHistory struct {
	models.StaffAssignment
	Service *ServiceRef `json:"service"`
}

// History lists a member's assignments, newest first, with their service.
func (s *StaffService) History(ctx context.Context, staffID uuid.UUID) ([]AssignmentHistory, error) {
	var assignments []models.StaffAssignment
	err := s.db.WithContext(ctx).
		Preload("StaffRole").
		Where("staff_member_id = ?", staffID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	refs, err := s.serviceRefs(ctx, assignments, "")
	if err != nil {
		return nil, err
	}
	out := make([]AssignmentHistory, 0, len(assignments))
	for _, a := range assignments {
		h := AssignmentHistory{StaffAssignment: a}
		if r, ok := refFor(refs, a); ok {
			h.Service = &r
		}
		out = append(out, h)
	}
	return out, nil
}

type SummaryService struct {
	ID          uuid.UUID  `json:"id"`
	Role        string     `json:"role"`
	HoursWorked *float64   `json:"hoursWorked"`
	TotalPay    *float64   `json:"totalPay"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Title       *string    `json:"title"`
	EventDate   *string    `json:"eventDate"`
}

type StaffSummary struct {
	StaffID    uuid.UUID        `json:"staffId"`
	Name       string           `json:"name"`
	TotalHours float64          `json:"totalHours"`
	TotalPay   float64          `json:"totalPay"`
	Services   []SummaryService `json:"services"`
}

type MonthlySummary struct {
	Month      string         `json:"month"`
	StaffCount int            `json:"staffCount"`
	TotalHours float64        `json:"totalHours"`
	TotalPay   float64        `json:"totalPay"`
	Staff      []StaffSummary `json:"staff"`
}

// Summary groups the month's assignments (by start time) per member.
func (s *StaffService) Summary(ctx context.Context, month string) (*MonthlySummary, error) {
	from, to, err := utils.MonthRange(month, s.loc)
	if err != nil {
		return nil, invalidf("month parameter required (YYYY-MM)")
	}

	var assignments []models.StaffAssignment
	err = s.db.WithContext(ctx).
		Preload("StaffMember").
		Preload("StaffRole").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	refs, err := s.serviceRefs(ctx, assignments, "")
	if err != nil {
		return nil, err
	}

	byStaff := make(map[uuid.UUID]*StaffSummary)
	var order []uuid.UUID
	for _, a := range assignments {
		sum, ok := byStaff[a.StaffMemberID]
		if !ok {
			sum = &StaffSummary{StaffID: a.StaffMemberID, Services: []SummaryService{}}
			if a.StaffMember != nil {
				sum.Name = a.StaffMember.FullName()
			}
			byStaff[a.StaffMemberID] = sum
			order = append(order, a.StaffMemberID)
		}
		if a.HoursWorked != nil {
			sum.TotalHours = pricing.Sum(sum.TotalHours, *a.HoursWorked)
		}
		if a.TotalPay != nil {
			sum.TotalPay = pricing.Sum(sum.TotalPay, *a.TotalPay)
		}
		svc := SummaryService{
			ID:          a.ID,
			HoursWorked: a.HoursWorked,
			TotalPay:    a.TotalPay,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		}
		if a.StaffRole != nil {
			svc.Role = a.StaffRole.Name
		}
		if r, ok := refFor(refs, a); ok {
			title, date := r.Title, r.EventDate
			svc.Title, svc.EventDate = &title, &date
		}
		sum.Services = append(sum.Services, svc)
	}

	out := &MonthlySummary{Month: month, Staff: make([]StaffSummary, 0, len(order))}
	for _, id := range order {
		sum := byStaff[id]
		out.Staff = append(out.Staff, *sum)
		out.TotalHours = pricing.Sum(out.TotalHours, sum.TotalHours)
		out.TotalPay = pricing.Sum(out.TotalPay, sum.TotalPay)
	}
	sort.SliceStable(out.Staff, func(i, j int) bool { return out.Staff[i].Name < out.Staff[j].Name })
	out.StaffCount = len(out.Staff)
	return out, nil
}

type UpcomingService struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	EventDate  string    `json:"eventDate"`
	ClientName string    `json:"clientName"`
}

// Upcoming maps each member id to their services dated today or later.
func (s *StaffService) Upcoming(ctx context.Context) (map[string][]UpcomingService, error) {
	today := s.now().In(s.loc).Format(utils.DateLayout)

	var assignments []models.StaffAssignment
	if err := s.db.WithContext(ctx).Find(&assignments).Error; err != nil {
		return nil, err
	}
	refs, err := s.serviceRefs(ctx, assignments, today)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]UpcomingService)
	for _, a := range assignments {
		r, ok := refFor(refs, a)
		if !ok || r.EventDate == "" {
			continue
		}
		key := a.StaffMemberID.String()
		out[key] = append(out[key], UpcomingService{
			ID:         r.ID,
			Title:      r.Title,
			EventDate:  r.EventDate,
			ClientName: r.ClientName,
		})
	}
	for _, list := range out {
		sort.SliceStable(list, func(i, j int) bool { return list[i].EventDate < list[j].EventDate })
	}
	return out, nil
}

type StaffRoleInput struct {
	Name              string   `json:"name"`
	DefaultHourlyRate *float64 `json:"defaultHourlyRate"`
	SortOrder         *int     `json:"sortOrder"`
}

func (s *StaffService) ListRoles(ctx context.Context) ([]models.StaffRole, error) {
	var roles []models.StaffRole
	err := s.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&roles).Error
	return roles, err
}

func (s *StaffService) CreateRole(ctx context.Context, in StaffRoleInput) (*models.StaffRole, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidf("Role name is required")
	}
	role := models.StaffRole{Name: name}
	if in.DefaultHourlyRate != nil {
		if *in.DefaultHourlyRate < 0 {
			return nil, invalidf("Hourly rate cannot be negative")
		}
		role.DefaultHourlyRate = pricing.Round(*in.DefaultHourlyRate)
	}
	if in.SortOrder != nil {
		role.SortOrder = *in.SortOrder
	} else {
		var max *int
		if err := s.db.WithContext(ctx).Model(&models.StaffRole{}).Select("MAX(sort_order)").Scan(&max).Error; err != nil {
			return nil, err
		}
		if max != nil {
			role.SortOrder = *max + 1
		}
	}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole changes only the fields present in the input.
func (s *StaffService) UpdateRole(ctx context.Context, id uuid.UUID, in StaffRoleInput) (*models.StaffRole, error) {
	updates := map[string]any{}
	if in.Name != "" {
		updates["name"] = strings.TrimSpace(in.Name)
	}
	if in.DefaultHourlyRate != nil {
		if *in.DefaultHourlyRate < 0 {
			return nil, invalidf("Hourly rate cannot be negative")
		}
		updates["default_hourly_rate"] = pricing.Round(*in.DefaultHourlyRate)
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	var role models.StaffRole
	if err := s.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&role).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes the role and its member links. Assignments keep their
// computed pay but lose the role reference.
func (s *StaffService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.StaffRole{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("staff_role_id = ?", id).Delete(&models.StaffMemberRole{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.StaffAssignment{}).Where("staff_role_id = ?", id).Update("staff_role_id", nil).Error
	})
}
