package models

const (
	ContactStatusPending  = "pending"
	ContactStatusAccepted = "accepted"
	ContactStatusRejected = "rejected"
	ContactStatusBlocked  = "blocked"
)

// Contact is a directed edge between two users. Direction records who
// initiated the relationship; lookups must treat (user, contact) and
// (contact, user) as the same pair.
type Contact struct {
	BaseModel

	UserID    uint   `gorm:"not null;uniqueIndex:idx_contact_pair;index:idx_contact_user_status"`
	ContactID uint   `gorm:"not null;uniqueIndex:idx_contact_pair;index:idx_contact_target_status"`
	Status    string `gorm:"not null;default:pending;index:idx_contact_user_status;index:idx_contact_target_status"`

	// Relationships
	User    User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contact User `gorm:"foreignKey:ContactID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// ValidContactStatus reports whether s is one of the four edge statuses.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusPending, ContactStatusAccepted, ContactStatusRejected, ContactStatusBlocked:
		return true
	}
	return false
}

// Counterpart returns the endpoint of the edge that is not userID.
func (c *Contact) Counterpart(userID uint) uint {
	if c.UserID == userID {
		return c.ContactID
	}
	return c.UserID
}
