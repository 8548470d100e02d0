package services

import (
	"time"

	"github.com/huddle-dev/huddle/internal/models"
)

type UserSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Login  string `json:"login"`
	Avatar string `json:"avatar,omitempty"`
	Email  string `json:"email,omitempty"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactResponse describes an edge from the actor's point of view:
// Contact is always the other endpoint.
type ContactResponse struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	ContactID uint        `json:"contact_id"`
	Status    string      `json:"status"`
	Contact   UserSummary `json:"contact"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type ProjectMemberResponse struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Login    string    `json:"login"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ProjectResponse struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Image       string                  `json:"image,omitempty"`
	Privacy     string                  `json:"privacy"`
	Status      string                  `json:"status"`
	OwnerID     uint                    `json:"owner_id"`
	Owner       UserSummary             `json:"owner"`
	Members     []ProjectMemberResponse `json:"members"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
}

func newUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:     user.ID,
		Name:   user.Name,
		Login:  user.Login,
		Avatar: user.Avatar,
		Email:  user.Email,
	}
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Avatar:    user.Avatar,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// newContactResponse maps an edge for actorID; the edge must have both
// endpoint users populated.
func newContactResponse(contact *models.Contact, actorID uint) ContactResponse {
	counterpart := &contact.User
	if contact.UserID == actorID {
		counterpart = &contact.Contact
	}

	return ContactResponse{
		ID:        contact.ID,
		UserID:    contact.UserID,
		ContactID: contact.ContactID,
		Status:    contact.Status,
		Contact:   newUserSummary(counterpart),
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func newProjectMemberResponse(member *models.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ID:       member.User.ID,
		Name:     member.User.Name,
		Login:    member.User.Login,
		Avatar:   member.User.Avatar,
		Role:     member.Role,
		JoinedAt: member.CreatedAt,
	}
}

func newProjectResponse(project *models.Project, members []models.ProjectMember) ProjectResponse {
	memberResponses := make([]ProjectMemberResponse, 0, len(members))

	for i := range members {
		memberResponses = append(memberResponses, newProjectMemberResponse(&members[i]))
	}

	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Image:       project.Image,
		Privacy:     project.Privacy,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		Owner:       newUserSummary(&project.Owner),
		Members:     memberResponses,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		DueDate:     project.DueDate,
	}
}

func newUserSummaries(users []models.User) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))

	for i := range users {
		summaries = append(summaries, newUserSummary(&users[i]))
	}

	return summaries
}
