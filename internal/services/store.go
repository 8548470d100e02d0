package services

import "github.com/huddle-dev/huddle/internal/models"

// Persistence contracts consumed by the engines. Implementations must
// return gorm.ErrRecordNotFound for missing rows and gorm.ErrDuplicatedKey
// for uniqueness violations; the engines translate both into domain
// errors. Contact reads return edges with both endpoint users populated.

type UserStore interface {
	ByID(id uint) (*models.User, error)
	ActiveByID(id uint) (*models.User, error)
	ByLogin(login string) (*models.User, error)
	ByLoginOrEmail(login, email string) (*models.User, error)
	ByIDs(ids []uint) ([]models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error

	// SearchActive matches active users whose name or login contains
	// query (case-insensitive), excluding the given ids.
	SearchActive(query string, excludeIDs []uint, limit int) ([]models.User, error)

	// SearchActiveWithin is SearchActive restricted to a candidate id set.
	SearchActiveWithin(ids []uint, query string, limit int) ([]models.User, error)
}

type ContactStore interface {
	// Pair looks up the edge for the unordered pair {a, b}, regardless of
	// which endpoint initiated it.
	Pair(a, b uint) (*models.Contact, error)
	PairWithStatus(a, b uint, status string) (*models.Contact, error)

	// PendingForRecipient finds edge id only if recipientID is its target
	// and it is still pending.
	PendingForRecipient(id, recipientID uint) (*models.Contact, error)

	// WithEndpoint finds edge id only if userID is one of its endpoints.
	WithEndpoint(id, userID uint) (*models.Contact, error)

	// BlockedBy finds the blocked edge placed by blockerID against targetID.
	BlockedBy(blockerID, targetID uint) (*models.Contact, error)

	// ByInitiator lists edges initiated by userID, most recently updated
	// first, optionally filtered by status.
	ByInitiator(userID uint, status string) ([]models.Contact, error)
	PendingIncoming(userID uint) ([]models.Contact, error)
	PendingOutgoing(userID uint) ([]models.Contact, error)

	// AcceptedFor lists accepted edges with userID at either endpoint.
	AcceptedFor(userID uint) ([]models.Contact, error)

	// InitiatedIDs returns the counterpart ids of every edge userID
	// initiated, in any status.
	InitiatedIDs(userID uint) ([]uint, error)

	Create(contact *models.Contact) error
	Save(contact *models.Contact) error
	Delete(contact *models.Contact) error
}

type ProjectStore interface {
	// ByID loads a project with its owner populated.
	ByID(id uint) (*models.Project, error)

	// CreateWithOwner creates the project and its owner membership row in
	// one transaction.
	CreateWithOwner(project *models.Project) error
	Save(project *models.Project) error
	Delete(id uint) error

	Member(projectID, userID uint) (*models.ProjectMember, error)

	// Members lists memberships with users populated, earliest join first.
	Members(projectID uint) ([]models.ProjectMember, error)
	MemberIDs(projectID uint) ([]uint, error)
	MembershipsFor(userID uint) ([]models.ProjectMember, error)
	CreateMembers(members []models.ProjectMember) error
	SaveMember(member *models.ProjectMember) error
	DeleteMember(projectID, userID uint) error
}
