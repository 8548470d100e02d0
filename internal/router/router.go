package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/huddle-dev/huddle/internal/handlers"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Contacts *handlers.ContactHandler
	Projects *handlers.ProjectHandler
	Events   *handlers.EventsHandler
}

func New(h Handlers, authRequired gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", authRequired, h.Events.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh-token", h.Auth.RefreshToken)
			auth.POST("/validate-token", h.Auth.ValidateToken)

			auth.GET("/profile", authRequired, h.Auth.GetProfile)
			auth.PUT("/profile", authRequired, h.Auth.UpdateProfile)
			auth.PUT("/change-password", authRequired, h.Auth.ChangePassword)
		}

		contacts := api.Group("/contacts", authRequired)
		{
			contacts.POST("/requests", h.Contacts.SendRequest)
			contacts.PUT("/requests/:id/accept", h.Contacts.AcceptRequest)
			contacts.PUT("/requests/:id/reject", h.Contacts.RejectRequest)
			contacts.GET("/requests/incoming", h.Contacts.GetIncomingRequests)
			contacts.GET("/requests/outgoing", h.Contacts.GetOutgoingRequests)

			contacts.POST("/block/:id", h.Contacts.BlockUser)
			contacts.DELETE("/block/:id", h.Contacts.UnblockUser)

			contacts.GET("", h.Contacts.GetContacts)
			contacts.GET("/status/:id", h.Contacts.GetContactStatus)
			contacts.GET("/search", h.Contacts.SearchUsers)
			contacts.DELETE("/:id", h.Contacts.RemoveContact)
		}

		projects := api.Group("/projects", authRequired)
		{
			projects.POST("", h.Projects.CreateProject)
			projects.GET("", h.Projects.GetUserProjects)
			projects.GET("/:id", h.Projects.GetProject)
			projects.PUT("/:id", h.Projects.UpdateProject)
			projects.DELETE("/:id", h.Projects.DeleteProject)

			projects.POST("/:id/members", h.Projects.AddMembers)
			projects.GET("/:id/members", h.Projects.GetProjectMembers)
			projects.DELETE("/:id/members/:member_id", h.Projects.RemoveMember)
			projects.PUT("/:id/members/:member_id/role", h.Projects.UpdateMemberRole)

			projects.GET("/:id/contacts/search", h.Projects.SearchContactsForProject)
		}
	}

	return r
}
