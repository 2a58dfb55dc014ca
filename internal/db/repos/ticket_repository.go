package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"booking-service/internal/db/models"
)

// TicketRepository handles database operations for tickets.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// CreateTicket inserts a ticket and attaches it to the owning user. The
// ticket row and the association row are written in one transaction.
func (r *TicketRepository) CreateTicket(ticket *models.Ticket, userID int) (*models.Ticket, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}

	var created models.Ticket
	err = tx.QueryRowx(
		`INSERT INTO ticket (title, rows, columns, date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, rows, columns, date`,
		ticket.Title, ticket.Rows, ticket.Columns, ticket.Date,
	).StructScan(&created)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO user_ticket_association (user_id, ticket_id) VALUES ($1, $2)",
		userID, created.ID,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAllTickets returns all tickets in insertion order.
func (r *TicketRepository) GetAllTickets() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Select(&tickets, "SELECT id, title, rows, columns, date FROM ticket ORDER BY id")
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicketByID retrieves a ticket by id. Returns nil when no such ticket
// exists.
func (r *TicketRepository) GetTicketByID(id int) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Get(&ticket, "SELECT id, title, rows, columns, date FROM ticket WHERE id=$1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket applies the non-nil fields of the patch and returns the
// updated row. Returns nil when no such ticket exists.
func (r *TicketRepository) UpdateTicket(id int, patch models.TicketPatch) (*models.Ticket, error) {
	var updated models.Ticket
	err := r.db.QueryRowx(
		`UPDATE ticket
		 SET title = COALESCE($1, title),
		     rows = COALESCE($2, rows),
		     columns = COALESCE($3, columns),
		     date = COALESCE($4, date)
		 WHERE id = $5
		 RETURNING id, title, rows, columns, date`,
		patch.Title, patch.Rows, patch.Columns, patch.Date, id,
	).StructScan(&updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteTicket removes a ticket. Association rows are removed by the cascade.
func (r *TicketRepository) DeleteTicket(id int) error {
	_, err := r.db.Exec("DELETE FROM ticket WHERE id=$1", id)
	return err
}
