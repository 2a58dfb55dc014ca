package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"booking-service/internal/auth"
)

// SetupRoutes registers all HTML and API routes on the router.
func SetupRoutes(r *gin.Engine, h *Handler, sessions *auth.SessionManager) {
	r.Use(cors.Default())
	r.Use(SessionMiddleware(sessions))

	r.GET("/", h.Home)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/user_tickets/:id", h.UserTickets)

	api := r.Group("/api")
	{
		api.GET("/users", h.GetUsers)
		api.GET("/users/:id", h.GetUserByID)
		api.POST("/users", h.CreateUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)

		api.GET("/tickets", h.GetTickets)
		api.GET("/tickets/:id", h.GetTicketByID)
		api.POST("/tickets", h.CreateTicket)
		api.PUT("/tickets/:id", h.UpdateTicket)
		api.DELETE("/tickets/:id", h.DeleteTicket)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
