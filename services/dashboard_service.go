package services

import (
	"context"
	"time"

	"msilva-backend/models"
	"msilva-backend/utils"

	"gorm.io/gorm"
)

const upcomingLimit = 5

type DashboardOverview struct {
	TotalClients      int64                           `json:"totalClients"`
	ProposalsByStatus map[models.ProposalStatus]int64 `json:"proposalsByStatus"`
	AcceptedThisMonth float64                         `json:"acceptedThisMonth"`
	UpcomingServices  []CalendarEntry                 `json:"upcomingServices"`
}

type DashboardService struct {
	db       *gorm.DB
	calendar *CalendarService
	loc      *time.Location
	now      func() time.Time
}

func NewDashboardService(db *gorm.DB, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{db: db, calendar: NewCalendarService(db), loc: loc, now: time.Now}
}

// Overview counts clients and proposals, sums accepted proposals whose event
// falls in the current month, and lists the next confirmed services.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	now := s.now().In(s.loc)
	out := &DashboardOverview{
		ProposalsByStatus: map[models.ProposalStatus]int64{
			models.ProposalDraft:     0,
			models.ProposalSent:      0,
			models.ProposalAccepted:  0,
			models.ProposalRejected:  0,
			models.ProposalCancelled: 0,
		},
		UpcomingServices: []CalendarEntry{},
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Client{}).Count(&out.TotalClients).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		Status models.ProposalStatus
		Count  int64
	}
	if err := db.Model(&models.Proposal{}).Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		out.ProposalsByStatus[c.Status] = c.Count
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)
	err := db.Model(&models.Proposal{}).
		Where("status = ?", models.ProposalAccepted).
		Where("event_date >= ? AND event_date <= ?", first.Format(utils.DateLayout), last.Format(utils.DateLayout)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&out.AcceptedThisMonth).Error
	if err != nil {
		return nil, err
	}

	upcoming, err := s.calendar.List(ctx, now.Format(utils.DateLayout), "")
	if err != nil {
		return nil, err
	}
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	out.UpcomingServices = append(out.UpcomingServices, upcoming...)
	return out, nil
}
