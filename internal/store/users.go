package store

import (
	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/models"
)

type UserStore struct {
	conn *gorm.DB
}

func NewUserStore(conn *gorm.DB) *UserStore {
	return &UserStore{conn: conn}
}

func (s *UserStore) ByID(id uint) (*models.User, error) {
	var user models.User

	if err := s.conn.First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) ActiveByID(id uint) (*models.User, error) {
	var user models.User

	if err := s.conn.Where("id = ? AND is_active = ?", id, true).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) ByLogin(login string) (*models.User, error) {
	var user models.User

	if err := s.conn.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) ByLoginOrEmail(login, email string) (*models.User, error) {
	var user models.User

	query := s.conn.Where("login = ?", login)

	if email != "" {
		query = s.conn.Where("login = ? OR email = ?", login, email)
	}

	if err := query.First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) ByIDs(ids []uint) ([]models.User, error) {
	var users []models.User

	if len(ids) == 0 {
		return users, nil
	}

	if err := s.conn.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Create(user *models.User) error {
	return s.conn.Create(user).Error
}

func (s *UserStore) Save(user *models.User) error {
	return s.conn.Save(user).Error
}

func (s *UserStore) SearchActive(query string, excludeIDs []uint, limit int) ([]models.User, error) {
	var users []models.User

	pattern := "%" + query + "%"

	search := s.conn.
		Where("is_active = ?", true).
		Where("(name ILIKE ? OR login ILIKE ?)", pattern, pattern)

	if len(excludeIDs) > 0 {
		search = search.Where("id NOT IN ?", excludeIDs)
	}

	if err := search.Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) SearchActiveWithin(ids []uint, query string, limit int) ([]models.User, error) {
	var users []models.User

	if len(ids) == 0 {
		return users, nil
	}

	pattern := "%" + query + "%"

	err := s.conn.
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Where("(name ILIKE ? OR login ILIKE ?)", pattern, pattern).
		Limit(limit).
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}
