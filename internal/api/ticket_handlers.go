package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"booking-service/internal/db/models"
)

type ticketResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func ticketView(t *models.Ticket) ticketResponse {
	return ticketResponse{ID: t.ID, Title: t.Title}
}

// GetTickets lists all tickets as {id, title}.
func (h *Handler) GetTickets(c *gin.Context) {
	tickets, err := h.tickets.GetAllTickets()
	if err != nil {
		log.Printf("Failed to retrieve tickets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tickets"})
		return
	}

	views := make([]ticketResponse, 0, len(tickets))
	for i := range tickets {
		views = append(views, ticketView(&tickets[i]))
	}
	c.JSON(http.StatusOK, gin.H{"tickets": views})
}

// GetTicketByID retrieves a single ticket.
func (h *Handler) GetTicketByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	ticket, err := h.tickets.GetTicketByID(id)
	if err != nil {
		log.Printf("Failed to retrieve ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		return
	}
	if ticket == nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ticketView(ticket)})
}

// CreateTicket creates a ticket attached to an existing user and publishes a
// notification to the ticket queue. The owning user must be named by user_id
// and must exist.
func (h *Handler) CreateTicket(c *gin.Context) {
	var req struct {
		Title   string     `json:"title"`
		Rows    *int       `json:"rows"`
		Columns *int       `json:"columns"`
		Date    *time.Time `json:"date"`
		UserID  *int       `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Title == "" || req.Rows == nil || req.Columns == nil || req.Date == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, rows, columns and date are required"})
		return
	}
	if req.UserID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	user, err := h.users.GetUserByID(*req.UserID)
	if err != nil {
		log.Printf("Failed to retrieve user %d: %v", *req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ticket := &models.Ticket{
		Title:   req.Title,
		Rows:    *req.Rows,
		Columns: *req.Columns,
		Date:    *req.Date,
	}
	created, err := h.tickets.CreateTicket(ticket, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket title already exists"})
			return
		}
		log.Printf("Failed to create ticket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}

	if err := h.ticketQueue.Send(fmt.Sprintf("Ticket created: %s", created.Title)); err != nil {
		log.Printf("Failed to publish ticket notification: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"ticket": ticketView(created)})
}

// UpdateTicket applies a partial update over {title, rows, columns, date}.
func (h *Handler) UpdateTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	ticket, err := h.tickets.GetTicketByID(id)
	if err != nil {
		log.Printf("Failed to retrieve ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		return
	}
	if ticket == nil {
		notFound(c)
		return
	}

	var patch models.TicketPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.tickets.UpdateTicket(id, patch)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket title already exists"})
			return
		}
		log.Printf("Failed to update ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}
	if updated == nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ticketView(updated)})
}

// DeleteTicket removes a ticket and its association rows.
func (h *Handler) DeleteTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	ticket, err := h.tickets.GetTicketByID(id)
	if err != nil {
		log.Printf("Failed to retrieve ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		return
	}
	if ticket == nil {
		notFound(c)
		return
	}

	if err := h.tickets.DeleteTicket(id); err != nil {
		log.Printf("Failed to delete ticket %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": true})
}
