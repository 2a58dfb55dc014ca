package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"booking-service/internal/db/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a user and returns the stored row with its assigned id.
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	var created models.User
	err := r.db.QueryRowx(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, username, password",
		user.Username, user.Password,
	).StructScan(&created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAllUsers returns all users in insertion order.
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Select(&users, "SELECT id, username, password FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID retrieves a user by id. Returns nil when no such user exists.
func (r *UserRepository) GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, "SELECT id, username, password FROM users WHERE id=$1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username. Returns nil when no such
// user exists, so callers can treat an unknown username as an auth failure
// instead of dereferencing a missing record.
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, "SELECT id, username, password FROM users WHERE username=$1", username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the non-nil fields of the patch and returns the updated
// row. Returns nil when no such user exists.
func (r *UserRepository) UpdateUser(id int, patch models.UserPatch) (*models.User, error) {
	var updated models.User
	err := r.db.QueryRowx(
		`UPDATE users
		 SET username = COALESCE($1, username), password = COALESCE($2, password)
		 WHERE id = $3
		 RETURNING id, username, password`,
		patch.Username, patch.Password, id,
	).StructScan(&updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user. Association rows are removed by the cascade;
// tickets themselves survive since the schema allows shared ownership.
func (r *UserRepository) DeleteUser(id int) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id=$1", id)
	return err
}

// GetUserTickets returns the tickets attached to a user via the association
// table, in insertion order.
func (r *UserRepository) GetUserTickets(userID int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Select(&tickets,
		`SELECT t.id, t.title, t.rows, t.columns, t.date
		 FROM ticket t
		 JOIN user_ticket_association a ON a.ticket_id = t.id
		 WHERE a.user_id = $1
		 ORDER BY t.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
