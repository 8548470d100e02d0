package models

import "gorm.io/gorm"

const UserRoleUser = "user"

type User struct {
	gorm.Model

	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
	IsActive     bool   `gorm:"not null;default:true"`
	Avatar       string
	Email        string

	// Relationships
	SentContacts       []Contact       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReceivedContacts   []Contact       `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedProjects      []Project       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
