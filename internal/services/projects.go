package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/authz"
	"github.com/huddle-dev/huddle/internal/models"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Image       string
	Privacy     string
	DueDate     *time.Time
	MemberIDs   []uint
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Image       *string
	Privacy     *string
	Status      *string
	DueDate     *time.Time
}

// ProjectService owns project CRUD, membership roles and privacy-based
// visibility. Contacts are consulted for contacts_only visibility and for
// invite candidate search.
type ProjectService struct {
	users    UserStore
	contacts ContactStore
	projects ProjectStore
}

func NewProjectService(users UserStore, contacts ContactStore, projects ProjectStore) *ProjectService {
	return &ProjectService{
		users:    users,
		contacts: contacts,
		projects: projects,
	}
}

// CreateProject creates a project with the actor as its owner member and
// optionally bulk-invites initial members with role "member".
func (s *ProjectService) CreateProject(actorID uint, input CreateProjectInput) (*ProjectResponse, error) {
	if _, err := s.users.ByID(actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, classifyStorageError(err)
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.InvalidInput("project name is required")
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = models.ProjectPrivacyPrivate
	}

	if !models.ValidProjectPrivacy(privacy) {
		return nil, apperrors.InvalidInput("unknown project privacy")
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Privacy:     privacy,
		Status:      models.ProjectStatusActive,
		OwnerID:     actorID,
		DueDate:     input.DueDate,
	}

	if err := s.projects.CreateWithOwner(project); err != nil {
		return nil, classifyStorageError(err)
	}

	if len(input.MemberIDs) > 0 {
		if _, err := s.AddMembers(actorID, project.ID, input.MemberIDs, string(authz.RoleMember)); err != nil {
			return nil, err
		}
	}

	return s.hydrate(project.ID)
}

// UpdateProject merges non-nil patch fields over the project. Requires
// the edit capability (owner or admin).
func (s *ProjectService) UpdateProject(actorID, projectID uint, input UpdateProjectInput) (*ProjectResponse, error) {
	project, err := s.projects.ByID(projectID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project not found")
		}
		return nil, classifyStorageError(err)
	}

	if err := s.requireCapability(actorID, projectID, authz.CapEditProject); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.InvalidInput("project name cannot be empty")
		}
		project.Name = *input.Name
	}

	if input.Description != nil {
		project.Description = *input.Description
	}

	if input.Image != nil {
		project.Image = *input.Image
	}

	if input.Privacy != nil {
		if !models.ValidProjectPrivacy(*input.Privacy) {
			return nil, apperrors.InvalidInput("unknown project privacy")
		}
		project.Privacy = *input.Privacy
	}

	if input.Status != nil {
		if !models.ValidProjectStatus(*input.Status) {
			return nil, apperrors.InvalidInput("unknown project status")
		}
		project.Status = *input.Status
	}

	if input.DueDate != nil {
		project.DueDate = input.DueDate
	}

	if err := s.projects.Save(project); err != nil {
		return nil, classifyStorageError(err)
	}

	return s.hydrate(projectID)
}

// DeleteProject removes the project; dependent members go with it via the
// storage cascade. Owner only.
func (s *ProjectService) DeleteProject(actorID, projectID uint) error {
	if _, err := s.projects.ByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("project not found")
		}
		return classifyStorageError(err)
	}

	if err := s.requireCapability(actorID, projectID, authz.CapDeleteProject); err != nil {
		return err
	}

	if err := s.projects.Delete(projectID); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// GetProject returns the hydrated project if the actor may see it.
// Invisible and nonexistent projects are indistinguishable.
func (s *ProjectService) GetProject(actorID, projectID uint) (*ProjectResponse, error) {
	project, err := s.hydrate(projectID)

	if err != nil {
		return nil, err
	}

	visible, err := s.canView(actorID, project)

	if err != nil {
		return nil, err
	}

	if !visible {
		return nil, apperrors.NotFound("project not found")
	}

	return project, nil
}

// GetUserProjects lists every project the actor is a member of, hydrated.
func (s *ProjectService) GetUserProjects(actorID uint) ([]ProjectResponse, error) {
	memberships, err := s.projects.MembershipsFor(actorID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	responses := make([]ProjectResponse, 0, len(memberships))

	for _, membership := range memberships {
		project, err := s.hydrate(membership.ProjectID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *project)
	}

	return responses, nil
}

// AddMembers inserts the given users as members, silently skipping ids
// that are already members or do not exist. Requires the invite
// capability; the granted role defaults to "member".
func (s *ProjectService) AddMembers(actorID, projectID uint, userIDs []uint, role string) (*ProjectResponse, error) {
	if role == "" {
		role = string(authz.RoleMember)
	}

	if !authz.AssignableRole(role) {
		return nil, apperrors.InvalidInput("invalid member role")
	}

	if err := s.requireCapability(actorID, projectID, authz.CapInviteMembers); err != nil {
		return nil, err
	}

	users, err := s.users.ByIDs(userIDs)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	existingIDs, err := s.projects.MemberIDs(projectID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	var members []models.ProjectMember

	for _, user := range users {
		if existing[user.ID] {
			continue
		}
		members = append(members, models.ProjectMember{
			ProjectID: projectID,
			UserID:    user.ID,
			Role:      role,
			InvitedBy: actorID,
		})
	}

	if len(members) > 0 {
		if err := s.projects.CreateMembers(members); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Conflict("membership already exists")
			}
			return nil, classifyStorageError(err)
		}
	}

	return s.hydrate(projectID)
}

// RemoveMember deletes a membership. Allowed for the owner, or for any
// member removing themself. The owner row itself can never be removed.
func (s *ProjectService) RemoveMember(actorID, projectID, targetUserID uint) error {
	actorMember, err := s.projects.Member(projectID, actorID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.PermissionDenied("you are not a member of this project")
		}
		return classifyStorageError(err)
	}

	if actorID != targetUserID && !authz.Allows(authz.Role(actorMember.Role), authz.CapRemoveMembers) {
		return apperrors.PermissionDenied("insufficient role to remove members")
	}

	targetMember, err := s.projects.Member(projectID, targetUserID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("member not found")
		}
		return classifyStorageError(err)
	}

	if authz.Role(targetMember.Role) == authz.RoleOwner {
		return apperrors.PermissionDenied("the project owner cannot be removed")
	}

	if err := s.projects.DeleteMember(projectID, targetUserID); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// UpdateMemberRole changes a member's role. Strictly owner-only, and the
// owner row keeps its role forever.
func (s *ProjectService) UpdateMemberRole(actorID, projectID, targetUserID uint, role string) error {
	if !authz.AssignableRole(role) {
		return apperrors.InvalidInput("invalid member role")
	}

	actorMember, err := s.projects.Member(projectID, actorID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.PermissionDenied("you are not a member of this project")
		}
		return classifyStorageError(err)
	}

	if !authz.Allows(authz.Role(actorMember.Role), authz.CapChangeRoles) {
		return apperrors.PermissionDenied("only the owner can change member roles")
	}

	targetMember, err := s.projects.Member(projectID, targetUserID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("member not found")
		}
		return classifyStorageError(err)
	}

	if authz.Role(targetMember.Role) == authz.RoleOwner {
		return apperrors.PermissionDenied("the owner role cannot be changed")
	}

	targetMember.Role = role

	if err := s.projects.SaveMember(targetMember); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// GetProjectMembers lists members with user details, earliest join first.
// Subject to the same visibility rule as GetProject.
func (s *ProjectService) GetProjectMembers(actorID, projectID uint) ([]ProjectMemberResponse, error) {
	project, err := s.hydrate(projectID)

	if err != nil {
		return nil, err
	}

	visible, err := s.canView(actorID, project)

	if err != nil {
		return nil, err
	}

	if !visible {
		return nil, apperrors.NotFound("project not found")
	}

	return project.Members, nil
}

// SearchContactsForProject finds the actor's accepted contacts, in either
// direction, who are not yet members and match the query.
func (s *ProjectService) SearchContactsForProject(actorID, projectID uint, query string) ([]UserSummary, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return nil, apperrors.InvalidInput("search query is required")
	}

	accepted, err := s.contacts.AcceptedFor(actorID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	memberIDs, err := s.projects.MemberIDs(projectID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	members := make(map[uint]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	var candidateIDs []uint

	for i := range accepted {
		counterpart := accepted[i].Counterpart(actorID)
		if !members[counterpart] {
			candidateIDs = append(candidateIDs, counterpart)
		}
	}

	if len(candidateIDs) == 0 {
		return []UserSummary{}, nil
	}

	users, err := s.users.SearchActiveWithin(candidateIDs, query, searchLimit)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	return newUserSummaries(users), nil
}

// requireCapability is the authorization gate for project mutations:
// membership lookup plus capability-table check.
func (s *ProjectService) requireCapability(actorID, projectID uint, cap authz.Capability) error {
	member, err := s.projects.Member(projectID, actorID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.PermissionDenied("you are not a member of this project")
		}
		return classifyStorageError(err)
	}

	if !authz.Allows(authz.Role(member.Role), cap) {
		return apperrors.PermissionDenied("insufficient role for this action")
	}

	return nil
}

// canView is the read-side predicate: member, or public, or contacts_only
// with an accepted edge between actor and owner.
func (s *ProjectService) canView(actorID uint, project *ProjectResponse) (bool, error) {
	_, err := s.projects.Member(project.ID, actorID)

	if err == nil {
		return true, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, classifyStorageError(err)
	}

	switch project.Privacy {
	case models.ProjectPrivacyPublic:
		return true, nil
	case models.ProjectPrivacyContactsOnly:
		_, err := s.contacts.PairWithStatus(actorID, project.OwnerID, models.ContactStatusAccepted)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, classifyStorageError(err)
	default:
		return false, nil
	}
}

func (s *ProjectService) hydrate(projectID uint) (*ProjectResponse, error) {
	project, err := s.projects.ByID(projectID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project not found")
		}
		return nil, classifyStorageError(err)
	}

	members, err := s.projects.Members(projectID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	response := newProjectResponse(project, members)
	return &response, nil
}
