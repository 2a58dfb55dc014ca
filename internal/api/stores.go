package api

import "booking-service/internal/db/models"

// UserStore is the persistence surface the handlers need for users.
type UserStore interface {
	CreateUser(user *models.User) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(id int, patch models.UserPatch) (*models.User, error)
	DeleteUser(id int) error
	GetUserTickets(userID int) ([]models.Ticket, error)
}

// TicketStore is the persistence surface the handlers need for tickets.
type TicketStore interface {
	CreateTicket(ticket *models.Ticket, userID int) (*models.Ticket, error)
	GetAllTickets() ([]models.Ticket, error)
	GetTicketByID(id int) (*models.Ticket, error)
	UpdateTicket(id int, patch models.TicketPatch) (*models.Ticket, error)
	DeleteTicket(id int) error
}

// Publisher publishes a notification message to one named queue.
type Publisher interface {
	Send(message string) error
}
