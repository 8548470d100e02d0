package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huddle-dev/huddle/internal/notify"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/utils"
)

type SendRequestRequest struct {
	ContactID uint `json:"contact_id" binding:"required"`
}

type ContactHandler struct {
	contacts *services.ContactService
	hub      *notify.Hub
	logger   *zap.Logger
}

func NewContactHandler(contacts *services.ContactService, hub *notify.Hub, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, hub: hub, logger: logger}
}

func (h *ContactHandler) SendRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SendRequestRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	contact, err := h.contacts.SendRequest(userID, req.ContactID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.hub.Push(req.ContactID, notify.Event{Type: notify.EventContactRequest, Data: contact})

	ctx.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) AcceptRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.AcceptRequest(userID, contactID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	// The counterpart in the actor's view of an accepted request is the
	// original sender.
	h.hub.Push(contact.Contact.ID, notify.Event{Type: notify.EventContactAccepted, Data: contact})

	ctx.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) RejectRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.RejectRequest(userID, contactID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) BlockUser(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.BlockUser(userID, targetID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) UnblockUser(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contacts.UnblockUser(userID, targetID); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ContactHandler) RemoveContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contacts.RemoveContact(userID, contactID); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ContactHandler) GetContacts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contacts, err := h.contacts.GetContacts(userID, ctx.Query("status"))

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetIncomingRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requests, err := h.contacts.GetIncomingRequests(userID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, requests)
}

func (h *ContactHandler) GetOutgoingRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	requests, err := h.contacts.GetOutgoingRequests(userID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, requests)
}

func (h *ContactHandler) GetContactStatus(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.GetContactStatus(userID, targetID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	// No edge means no relationship, not an error.
	ctx.JSON(http.StatusOK, gin.H{"contact": contact})
}

func (h *ContactHandler) SearchUsers(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.contacts.SearchUsers(userID, ctx.Query("search"))

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
