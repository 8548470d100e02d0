package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddle-dev/huddle/internal/notify"
	"github.com/huddle-dev/huddle/internal/utils"
)

type EventsHandler struct {
	hub *notify.Hub
}

func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// WebSocket subscribes the authenticated user to their event stream.
func (h *EventsHandler) WebSocket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	h.hub.Serve(ctx, userID)
}
