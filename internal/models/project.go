package models

import "time"

const (
	ProjectPrivacyPublic       = "public"
	ProjectPrivacyPrivate      = "private"
	ProjectPrivacyContactsOnly = "contacts_only"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusArchived  = "archived"
	ProjectStatusCompleted = "completed"
)

// Project rows are deleted for real so the member cascade fires at the
// database level.
type Project struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Image       string
	Privacy     string `gorm:"not null;default:private"`
	Status      string `gorm:"not null;default:active"`
	OwnerID     uint   `gorm:"not null;index"`
	DueDate     *time.Time

	// Relationships
	Owner          User            `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMembers []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidProjectPrivacy(s string) bool {
	switch s {
	case ProjectPrivacyPublic, ProjectPrivacyPrivate, ProjectPrivacyContactsOnly:
		return true
	}
	return false
}

func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusCompleted:
		return true
	}
	return false
}
