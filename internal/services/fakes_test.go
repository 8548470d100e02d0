package services

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/models"
)

// In-memory store fakes. They mirror the storage contract: missing rows
// are gorm.ErrRecordNotFound, uniqueness violations gorm.ErrDuplicatedKey.

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(login, name string, active bool) *models.User {
	user := &models.User{
		Login:        login,
		Name:         name,
		PasswordHash: "x",
		Role:         models.UserRoleUser,
		IsActive:     active,
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) ByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ActiveByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok || !user.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ByLogin(login string) (*models.User, error) {
	for _, user := range f.users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ByLoginOrEmail(login, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Login == login || (email != "" && user.Email == email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) Create(user *models.User) error {
	if _, err := f.ByLogin(user.Login); err == nil {
		return gorm.ErrDuplicatedKey
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) Save(user *models.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) SearchActive(query string, excludeIDs []uint, limit int) ([]models.User, error) {
	excluded := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var users []models.User
	for _, user := range f.sorted() {
		if !user.IsActive || excluded[user.ID] || !matchesQuery(user, query) {
			continue
		}
		users = append(users, *user)
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (f *fakeUserStore) SearchActiveWithin(ids []uint, query string, limit int) ([]models.User, error) {
	allowed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}

	var users []models.User
	for _, user := range f.sorted() {
		if !allowed[user.ID] || !user.IsActive || !matchesQuery(user, query) {
			continue
		}
		users = append(users, *user)
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (f *fakeUserStore) sorted() []*models.User {
	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func matchesQuery(user *models.User, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(user.Name), query) ||
		strings.Contains(strings.ToLower(user.Login), query)
}

type fakeContactStore struct {
	contacts map[uint]*models.Contact
	users    *fakeUserStore
	nextID   uint
	clock    time.Duration

	// failNextCreate simulates a storage-level failure (e.g. a racing
	// insert hitting the pair index) on the next Create call.
	failNextCreate error
}

func newFakeContactStore(users *fakeUserStore) *fakeContactStore {
	return &fakeContactStore{contacts: make(map[uint]*models.Contact), users: users, nextID: 1}
}

func (f *fakeContactStore) tick() time.Time {
	f.clock += time.Millisecond
	return time.Unix(0, 0).Add(f.clock)
}

func (f *fakeContactStore) hydrated(contact *models.Contact) *models.Contact {
	edge := *contact
	if user, ok := f.users.users[edge.UserID]; ok {
		edge.User = *user
	}
	if user, ok := f.users.users[edge.ContactID]; ok {
		edge.Contact = *user
	}
	return &edge
}

func (f *fakeContactStore) Pair(a, b uint) (*models.Contact, error) {
	for _, contact := range f.contacts {
		if (contact.UserID == a && contact.ContactID == b) || (contact.UserID == b && contact.ContactID == a) {
			return f.hydrated(contact), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeContactStore) PairWithStatus(a, b uint, status string) (*models.Contact, error) {
	contact, err := f.Pair(a, b)
	if err != nil || contact.Status != status {
		return nil, gorm.ErrRecordNotFound
	}
	return contact, nil
}

func (f *fakeContactStore) PendingForRecipient(id, recipientID uint) (*models.Contact, error) {
	contact, ok := f.contacts[id]
	if !ok || contact.ContactID != recipientID || contact.Status != models.ContactStatusPending {
		return nil, gorm.ErrRecordNotFound
	}
	return f.hydrated(contact), nil
}

func (f *fakeContactStore) WithEndpoint(id, userID uint) (*models.Contact, error) {
	contact, ok := f.contacts[id]
	if !ok || (contact.UserID != userID && contact.ContactID != userID) {
		return nil, gorm.ErrRecordNotFound
	}
	return f.hydrated(contact), nil
}

func (f *fakeContactStore) BlockedBy(blockerID, targetID uint) (*models.Contact, error) {
	for _, contact := range f.contacts {
		if contact.UserID == blockerID && contact.ContactID == targetID && contact.Status == models.ContactStatusBlocked {
			return f.hydrated(contact), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeContactStore) ByInitiator(userID uint, status string) ([]models.Contact, error) {
	var edges []models.Contact
	for _, contact := range f.contacts {
		if contact.UserID != userID {
			continue
		}
		if status != "" && contact.Status != status {
			continue
		}
		edges = append(edges, *f.hydrated(contact))
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].UpdatedAt.After(edges[j].UpdatedAt) })
	return edges, nil
}

func (f *fakeContactStore) PendingIncoming(userID uint) ([]models.Contact, error) {
	return f.pending(func(c *models.Contact) bool { return c.ContactID == userID })
}

func (f *fakeContactStore) PendingOutgoing(userID uint) ([]models.Contact, error) {
	return f.pending(func(c *models.Contact) bool { return c.UserID == userID })
}

func (f *fakeContactStore) pending(match func(*models.Contact) bool) ([]models.Contact, error) {
	var edges []models.Contact
	for _, contact := range f.contacts {
		if contact.Status == models.ContactStatusPending && match(contact) {
			edges = append(edges, *f.hydrated(contact))
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].CreatedAt.After(edges[j].CreatedAt) })
	return edges, nil
}

func (f *fakeContactStore) AcceptedFor(userID uint) ([]models.Contact, error) {
	var edges []models.Contact
	for _, contact := range f.contacts {
		if contact.Status != models.ContactStatusAccepted {
			continue
		}
		if contact.UserID == userID || contact.ContactID == userID {
			edges = append(edges, *contact)
		}
	}
	return edges, nil
}

func (f *fakeContactStore) InitiatedIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, contact := range f.contacts {
		if contact.UserID == userID {
			ids = append(ids, contact.ContactID)
		}
	}
	return ids, nil
}

func (f *fakeContactStore) Create(contact *models.Contact) error {
	if f.failNextCreate != nil {
		err := f.failNextCreate
		f.failNextCreate = nil
		return err
	}
	if _, err := f.Pair(contact.UserID, contact.ContactID); err == nil {
		return gorm.ErrDuplicatedKey
	}
	contact.ID = f.nextID
	f.nextID++
	contact.CreatedAt = f.tick()
	contact.UpdatedAt = contact.CreatedAt
	stored := *contact
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactStore) Save(contact *models.Contact) error {
	contact.UpdatedAt = f.tick()
	stored := *contact
	stored.User = models.User{}
	stored.Contact = models.User{}
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactStore) Delete(contact *models.Contact) error {
	delete(f.contacts, contact.ID)
	return nil
}

type fakeProjectStore struct {
	projects     map[uint]*models.Project
	members      map[uint]*models.ProjectMember
	users        *fakeUserStore
	nextID       uint
	nextMemberID uint
	clock        time.Duration
}

func newFakeProjectStore(users *fakeUserStore) *fakeProjectStore {
	return &fakeProjectStore{
		projects:     make(map[uint]*models.Project),
		members:      make(map[uint]*models.ProjectMember),
		users:        users,
		nextID:       1,
		nextMemberID: 1,
	}
}

func (f *fakeProjectStore) tick() time.Time {
	f.clock += time.Millisecond
	return time.Unix(0, 0).Add(f.clock)
}

func (f *fakeProjectStore) ByID(id uint) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	hydrated := *project
	if owner, ok := f.users.users[project.OwnerID]; ok {
		hydrated.Owner = *owner
	}
	return &hydrated, nil
}

func (f *fakeProjectStore) CreateWithOwner(project *models.Project) error {
	project.ID = f.nextID
	f.nextID++
	project.CreatedAt = f.tick()
	project.UpdatedAt = project.CreatedAt
	stored := *project
	f.projects[project.ID] = &stored

	return f.CreateMembers([]models.ProjectMember{{
		ProjectID: project.ID,
		UserID:    project.OwnerID,
		Role:      "owner",
		InvitedBy: project.OwnerID,
	}})
}

func (f *fakeProjectStore) Save(project *models.Project) error {
	project.UpdatedAt = f.tick()
	stored := *project
	stored.Owner = models.User{}
	f.projects[project.ID] = &stored
	return nil
}

func (f *fakeProjectStore) Delete(id uint) error {
	delete(f.projects, id)
	for memberID, member := range f.members {
		if member.ProjectID == id {
			delete(f.members, memberID)
		}
	}
	return nil
}

func (f *fakeProjectStore) Member(projectID, userID uint) (*models.ProjectMember, error) {
	for _, member := range f.members {
		if member.ProjectID == projectID && member.UserID == userID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectStore) Members(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	for _, member := range f.members {
		if member.ProjectID != projectID {
			continue
		}
		hydrated := *member
		if user, ok := f.users.users[member.UserID]; ok {
			hydrated.User = *user
		}
		members = append(members, hydrated)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })
	return members, nil
}

func (f *fakeProjectStore) MemberIDs(projectID uint) ([]uint, error) {
	var ids []uint
	for _, member := range f.members {
		if member.ProjectID == projectID {
			ids = append(ids, member.UserID)
		}
	}
	return ids, nil
}

func (f *fakeProjectStore) MembershipsFor(userID uint) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	for _, member := range f.members {
		if member.UserID == userID {
			memberships = append(memberships, *member)
		}
	}
	sort.Slice(memberships, func(i, j int) bool { return memberships[i].ProjectID < memberships[j].ProjectID })
	return memberships, nil
}

func (f *fakeProjectStore) CreateMembers(members []models.ProjectMember) error {
	for i := range members {
		if _, err := f.Member(members[i].ProjectID, members[i].UserID); err == nil {
			return gorm.ErrDuplicatedKey
		}
		members[i].ID = f.nextMemberID
		f.nextMemberID++
		members[i].CreatedAt = f.tick()
		members[i].UpdatedAt = members[i].CreatedAt
		stored := members[i]
		f.members[members[i].ID] = &stored
	}
	return nil
}

func (f *fakeProjectStore) SaveMember(member *models.ProjectMember) error {
	member.UpdatedAt = f.tick()
	stored := *member
	stored.User = models.User{}
	stored.Project = models.Project{}
	f.members[member.ID] = &stored
	return nil
}

func (f *fakeProjectStore) DeleteMember(projectID, userID uint) error {
	for memberID, member := range f.members {
		if member.ProjectID == projectID && member.UserID == userID {
			delete(f.members, memberID)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
