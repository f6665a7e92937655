package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Client{},
		&Category{},
		&Service{},
		&ServiceIncludedItem{},
		&ServicePricedOption{},
		&ProposalMoment{},
		&CatalogItem{},
		&MomentItem{},
		&Proposal{},
		&ProposalService{},
		&ProposalServiceOption{},
		&CalendarEvent{},
		&StaffRole{},
		&StaffMember{},
		&StaffMemberRole{},
		&StaffAssignment{},
		&CompanyProfile{},
		&TermsTemplate{},
		&ReminderTemplate{},
		&ReminderLog{},
	)
}
