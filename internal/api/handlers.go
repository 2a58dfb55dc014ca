package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"booking-service/internal/auth"
	"booking-service/internal/db/models"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	users       UserStore
	tickets     TicketStore
	sessions    *auth.SessionManager
	userQueue   Publisher
	ticketQueue Publisher
}

// NewHandler creates a new Handler with dependencies.
func NewHandler(users UserStore, tickets TicketStore, sessions *auth.SessionManager, userQueue, ticketQueue Publisher) *Handler {
	return &Handler{
		users:       users,
		tickets:     tickets,
		sessions:    sessions,
		userQueue:   userQueue,
		ticketQueue: ticketQueue,
	}
}

type userResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func userView(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate username or ticket title).
func isUniqueViolation(err error) bool {
	pgErr, ok := err.(*pq.Error)
	return ok && pgErr.Code == "23505"
}

// GetUsers lists all users as {id, username}.
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers()
	if err != nil {
		log.Printf("Failed to retrieve users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	views := make([]userResponse, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

// GetUserByID retrieves a single user.
func (h *Handler) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Printf("Failed to retrieve user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

// CreateUser creates a user and publishes a notification to the user queue.
func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	created, err := h.users.CreateUser(&models.User{Username: req.Username, Password: hashedPassword})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.userQueue.Send(fmt.Sprintf("User created: %s", created.Username)); err != nil {
		// Fire-and-forget: the user row is committed, so the request
		// still succeeds.
		log.Printf("Failed to publish user notification: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"user": userView(created)})
}

// UpdateUser applies a partial update over {username, password}.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Printf("Failed to retrieve user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		notFound(c)
		return
	}

	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if patch.Password != nil {
		hashedPassword, err := auth.HashPassword(*patch.Password)
		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		patch.Password = &hashedPassword
	}

	updated, err := h.users.UpdateUser(id, patch)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		log.Printf("Failed to update user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if updated == nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(updated)})
}

// DeleteUser removes a user. Its association rows go with it; tickets
// survive since they may be shared.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Printf("Failed to retrieve user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		notFound(c)
		return
	}

	if err := h.users.DeleteUser(id); err != nil {
		log.Printf("Failed to delete user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": true})
}
