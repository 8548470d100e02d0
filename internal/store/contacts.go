package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/huddle-dev/huddle/internal/models"
)

type ContactStore struct {
	conn *gorm.DB
}

func NewContactStore(conn *gorm.DB) *ContactStore {
	return &ContactStore{conn: conn}
}

// pairCondition matches the edge for the unordered pair {a, b}.
func pairCondition(conn *gorm.DB, a, b uint) *gorm.DB {
	return conn.Where("(user_id = ? AND contact_id = ?) OR (user_id = ? AND contact_id = ?)", a, b, b, a)
}

func (s *ContactStore) Pair(a, b uint) (*models.Contact, error) {
	var contact models.Contact

	err := pairCondition(s.preloaded(), a, b).First(&contact).Error

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) PairWithStatus(a, b uint, status string) (*models.Contact, error) {
	var contact models.Contact

	err := pairCondition(s.preloaded(), a, b).Where("status = ?", status).First(&contact).Error

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) PendingForRecipient(id, recipientID uint) (*models.Contact, error) {
	var contact models.Contact

	err := s.preloaded().
		Where("id = ? AND contact_id = ? AND status = ?", id, recipientID, models.ContactStatusPending).
		First(&contact).Error

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) WithEndpoint(id, userID uint) (*models.Contact, error) {
	var contact models.Contact

	err := s.preloaded().
		Where("id = ? AND (user_id = ? OR contact_id = ?)", id, userID, userID).
		First(&contact).Error

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) BlockedBy(blockerID, targetID uint) (*models.Contact, error) {
	var contact models.Contact

	err := s.preloaded().
		Where("user_id = ? AND contact_id = ? AND status = ?", blockerID, targetID, models.ContactStatusBlocked).
		First(&contact).Error

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) ByInitiator(userID uint, status string) ([]models.Contact, error) {
	var contacts []models.Contact

	query := s.preloaded().Where("user_id = ?", userID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("updated_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}

	return contacts, nil
}

func (s *ContactStore) PendingIncoming(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact

	err := s.preloaded().
		Where("contact_id = ? AND status = ?", userID, models.ContactStatusPending).
		Order("created_at DESC").
		Find(&contacts).Error

	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func (s *ContactStore) PendingOutgoing(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact

	err := s.preloaded().
		Where("user_id = ? AND status = ?", userID, models.ContactStatusPending).
		Order("created_at DESC").
		Find(&contacts).Error

	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func (s *ContactStore) AcceptedFor(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact

	err := s.conn.
		Where("(user_id = ? OR contact_id = ?) AND status = ?", userID, userID, models.ContactStatusAccepted).
		Find(&contacts).Error

	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func (s *ContactStore) InitiatedIDs(userID uint) ([]uint, error) {
	var ids []uint

	err := s.conn.
		Model(&models.Contact{}).
		Where("user_id = ?", userID).
		Pluck("contact_id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (s *ContactStore) Create(contact *models.Contact) error {
	return s.conn.Omit(clause.Associations).Create(contact).Error
}

// Save writes the edge only; preloaded endpoint users must never be
// written back, especially after the edge has been re-pointed.
func (s *ContactStore) Save(contact *models.Contact) error {
	return s.conn.Omit(clause.Associations).Save(contact).Error
}

func (s *ContactStore) Delete(contact *models.Contact) error {
	return s.conn.Delete(contact).Error
}

func (s *ContactStore) preloaded() *gorm.DB {
	return s.conn.Preload("User").Preload("Contact")
}
