package store

import (
	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/authz"
	"github.com/huddle-dev/huddle/internal/models"
)

type ProjectStore struct {
	conn *gorm.DB
}

func NewProjectStore(conn *gorm.DB) *ProjectStore {
	return &ProjectStore{conn: conn}
}

func (s *ProjectStore) ByID(id uint) (*models.Project, error) {
	var project models.Project

	if err := s.conn.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// CreateWithOwner inserts the project and its owner membership in one
// transaction so no project ever exists without an owner row.
func (s *ProjectStore) CreateWithOwner(project *models.Project) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		owner := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      string(authz.RoleOwner),
			InvitedBy: project.OwnerID,
		}

		return tx.Create(&owner).Error
	})
}

func (s *ProjectStore) Save(project *models.Project) error {
	return s.conn.Save(project).Error
}

func (s *ProjectStore) Delete(id uint) error {
	return s.conn.Delete(&models.Project{}, id).Error
}

func (s *ProjectStore) Member(projectID, userID uint) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := s.conn.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error

	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *ProjectStore) Members(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember

	err := s.conn.
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error

	if err != nil {
		return nil, err
	}

	return members, nil
}

func (s *ProjectStore) MemberIDs(projectID uint) ([]uint, error) {
	var ids []uint

	err := s.conn.
		Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (s *ProjectStore) MembershipsFor(userID uint) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember

	if err := s.conn.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	return memberships, nil
}

func (s *ProjectStore) CreateMembers(members []models.ProjectMember) error {
	if len(members) == 0 {
		return nil
	}
	return s.conn.Create(&members).Error
}

func (s *ProjectStore) SaveMember(member *models.ProjectMember) error {
	return s.conn.Save(member).Error
}

func (s *ProjectStore) DeleteMember(projectID, userID uint) error {
	return s.conn.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}
