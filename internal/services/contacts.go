package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/huddle-dev/huddle/internal/apperrors"
	"github.com/huddle-dev/huddle/internal/models"
)

const searchLimit = 10

// ContactService owns the contact-request state machine. Every call
// re-reads current state from the store; the pairwise uniqueness index is
// the final arbiter under concurrent sends.
type ContactService struct {
	users    UserStore
	contacts ContactStore

	// allowResendAfterReject lets a fresh request replace a rejected edge
	// instead of conflicting on it.
	allowResendAfterReject bool
}

func NewContactService(users UserStore, contacts ContactStore, allowResendAfterReject bool) *ContactService {
	return &ContactService{
		users:                  users,
		contacts:               contacts,
		allowResendAfterReject: allowResendAfterReject,
	}
}

// SendRequest creates a pending edge actor -> target. Any existing edge
// between the pair, in either direction, blocks the request.
func (s *ContactService) SendRequest(actorID, targetID uint) (*ContactResponse, error) {
	if actorID == targetID {
		return nil, apperrors.InvalidInput("you cannot add yourself as a contact")
	}

	target, err := s.users.ActiveByID(targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, classifyStorageError(err)
	}

	existing, err := s.contacts.Pair(actorID, targetID)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStorageError(err)
	}

	if existing != nil {
		switch existing.Status {
		case models.ContactStatusPending:
			if existing.UserID == actorID {
				return nil, apperrors.Conflict("contact request already sent")
			}
			return nil, apperrors.Conflict("this user has already sent you a contact request")
		case models.ContactStatusAccepted:
			return nil, apperrors.Conflict("user is already in your contacts")
		case models.ContactStatusBlocked:
			return nil, apperrors.Conflict("user is blocked")
		case models.ContactStatusRejected:
			if !s.allowResendAfterReject {
				return nil, apperrors.Conflict("a previous request between you was rejected")
			}
			// Reuse the edge: the new sender becomes the initiator.
			existing.UserID = actorID
			existing.ContactID = targetID
			existing.Status = models.ContactStatusPending

			if err := s.contacts.Save(existing); err != nil {
				return nil, classifyStorageError(err)
			}

			response := newContactResponseWith(existing, target)
			return &response, nil
		}
	}

	contact := &models.Contact{
		UserID:    actorID,
		ContactID: targetID,
		Status:    models.ContactStatusPending,
	}

	if err := s.contacts.Create(contact); err != nil {
		return nil, classifyStorageError(err)
	}

	response := newContactResponseWith(contact, target)
	return &response, nil
}

// AcceptRequest transitions a pending edge to accepted. Only the edge's
// target may accept; anyone else gets the same not-found as a missing
// edge.
func (s *ContactService) AcceptRequest(actorID, contactID uint) (*ContactResponse, error) {
	return s.resolveRequest(actorID, contactID, models.ContactStatusAccepted)
}

// RejectRequest transitions a pending edge to rejected. Rejected edges
// stay queryable and keep blocking new requests between the pair.
func (s *ContactService) RejectRequest(actorID, contactID uint) (*ContactResponse, error) {
	return s.resolveRequest(actorID, contactID, models.ContactStatusRejected)
}

func (s *ContactService) resolveRequest(actorID, contactID uint, status string) (*ContactResponse, error) {
	contact, err := s.contacts.PendingForRecipient(contactID, actorID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("contact request not found")
		}
		return nil, classifyStorageError(err)
	}

	contact.Status = status

	if err := s.contacts.Save(contact); err != nil {
		return nil, classifyStorageError(err)
	}

	response := newContactResponse(contact, actorID)
	return &response, nil
}

// BlockUser upserts the pairwise edge to blocked. The edge is re-pointed
// at the blocker so that only they can lift it; whatever relationship
// existed before is overwritten.
func (s *ContactService) BlockUser(actorID, targetID uint) (*ContactResponse, error) {
	if actorID == targetID {
		return nil, apperrors.InvalidInput("you cannot block yourself")
	}

	target, err := s.users.ActiveByID(targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, classifyStorageError(err)
	}

	contact, err := s.contacts.Pair(actorID, targetID)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStorageError(err)
	}

	if contact != nil {
		contact.UserID = actorID
		contact.ContactID = targetID
		contact.Status = models.ContactStatusBlocked

		if err := s.contacts.Save(contact); err != nil {
			return nil, classifyStorageError(err)
		}
	} else {
		contact = &models.Contact{
			UserID:    actorID,
			ContactID: targetID,
			Status:    models.ContactStatusBlocked,
		}

		if err := s.contacts.Create(contact); err != nil {
			return nil, classifyStorageError(err)
		}
	}

	response := newContactResponseWith(contact, target)
	return &response, nil
}

// UnblockUser deletes a blocked edge, but only for the user who placed
// the block.
func (s *ContactService) UnblockUser(actorID, targetID uint) error {
	contact, err := s.contacts.BlockedBy(actorID, targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user is not blocked")
		}
		return classifyStorageError(err)
	}

	if err := s.contacts.Delete(contact); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// RemoveContact deletes an edge in any status, as long as the actor is
// one of its endpoints.
func (s *ContactService) RemoveContact(actorID, contactID uint) error {
	contact, err := s.contacts.WithEndpoint(contactID, actorID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("contact not found")
		}
		return classifyStorageError(err)
	}

	if err := s.contacts.Delete(contact); err != nil {
		return classifyStorageError(err)
	}

	return nil
}

// GetContacts lists edges the actor initiated, most recently updated
// first. It is direction-sensitive: edges where the actor is the target
// are not included.
func (s *ContactService) GetContacts(actorID uint, status string) ([]ContactResponse, error) {
	if status != "" && !models.ValidContactStatus(status) {
		return nil, apperrors.InvalidInput("unknown contact status")
	}

	contacts, err := s.contacts.ByInitiator(actorID, status)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	return s.mapContacts(contacts, actorID), nil
}

func (s *ContactService) GetIncomingRequests(actorID uint) ([]ContactResponse, error) {
	contacts, err := s.contacts.PendingIncoming(actorID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	return s.mapContacts(contacts, actorID), nil
}

func (s *ContactService) GetOutgoingRequests(actorID uint) ([]ContactResponse, error) {
	contacts, err := s.contacts.PendingOutgoing(actorID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	return s.mapContacts(contacts, actorID), nil
}

// GetContactStatus looks up the pairwise edge regardless of direction.
// A missing edge is not an error: (nil, nil) means no relationship.
func (s *ContactService) GetContactStatus(actorID, targetID uint) (*ContactResponse, error) {
	contact, err := s.contacts.Pair(actorID, targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyStorageError(err)
	}

	response := newContactResponse(contact, actorID)
	return &response, nil
}

// SearchUsers finds active users matching query by name or login,
// excluding the actor and everyone the actor has initiated an edge with.
func (s *ContactService) SearchUsers(actorID uint, query string) ([]UserSummary, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return nil, apperrors.InvalidInput("search query is required")
	}

	contactIDs, err := s.contacts.InitiatedIDs(actorID)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	excludeIDs := append(contactIDs, actorID)

	users, err := s.users.SearchActive(query, excludeIDs, searchLimit)

	if err != nil {
		return nil, classifyStorageError(err)
	}

	return newUserSummaries(users), nil
}

func (s *ContactService) mapContacts(contacts []models.Contact, actorID uint) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))

	for i := range contacts {
		responses = append(responses, newContactResponse(&contacts[i], actorID))
	}

	return responses
}

// newContactResponseWith builds a response when the counterpart user is
// already in hand and the edge's preloads may be empty (fresh inserts).
func newContactResponseWith(contact *models.Contact, counterpart *models.User) ContactResponse {
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

// classifyStorageError keeps raw storage failures from escaping the
// engines: uniqueness violations become conflicts, everything else an
// opaque internal error.
func classifyStorageError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("relationship already exists")
	}
	return apperrors.Internal(err)
}
