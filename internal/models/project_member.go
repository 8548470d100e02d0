package models

// ProjectMember links a user to a project with a role. JoinedAt is the
// row's CreatedAt. Exactly one member per (project, user) pair, enforced
// by idx_project_user.
type ProjectMember struct {
	BaseModel

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Role      string `gorm:"not null;default:member"`
	InvitedBy uint

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
