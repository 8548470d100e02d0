package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huddle-dev/huddle/internal/notify"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/utils"
)

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Privacy     string     `json:"privacy"`
	DueDate     *time.Time `json:"due_date"`
	MemberIDs   []uint     `json:"member_ids"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Privacy     *string    `json:"privacy"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

type AddMembersRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Role    string `json:"role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ProjectHandler struct {
	projects *services.ProjectService
	hub      *notify.Hub
	logger   *zap.Logger
}

func NewProjectHandler(projects *services.ProjectService, hub *notify.Hub, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, hub: hub, logger: logger}
}

func (h *ProjectHandler) CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.CreateProject(userID, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Privacy:     req.Privacy,
		DueDate:     req.DueDate,
		MemberIDs:   req.MemberIDs,
	})

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.notifyAdded(project, req.MemberIDs, userID)

	ctx.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.UpdateProject(userID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Privacy:     req.Privacy,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.DeleteProject(userID, projectID); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.GetProject(userID, projectID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetUserProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := h.projects.GetUserProjects(userID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) AddMembers(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req AddMembersRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.AddMembers(userID, projectID, req.UserIDs, req.Role)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.notifyAdded(project, req.UserIDs, userID)

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) RemoveMember(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.IDParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.RemoveMember(userID, projectID, memberID); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) UpdateMemberRole(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.IDParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateMemberRoleRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.projects.UpdateMemberRole(userID, projectID, memberID, req.Role); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated"})
}

func (h *ProjectHandler) GetProjectMembers(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := h.projects.GetProjectMembers(userID, projectID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

func (h *ProjectHandler) SearchContactsForProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.IDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := h.projects.SearchContactsForProject(userID, projectID, ctx.Query("search"))

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// notifyAdded pushes a member-added event to every invited user that
// actually ended up on the member list.
func (h *ProjectHandler) notifyAdded(project *services.ProjectResponse, invitedIDs []uint, actorID uint) {
	members := make(map[uint]bool, len(project.Members))
	for _, member := range project.Members {
		members[member.ID] = true
	}

	for _, id := range invitedIDs {
		if id != actorID && members[id] {
			h.hub.Push(id, notify.Event{Type: notify.EventMemberAdded, Data: project})
		}
	}
}
