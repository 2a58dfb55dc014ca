package models

import "time"

// Ticket is a seat-map booking record: a rows x columns extent for a date.
type Ticket struct {
	ID      int       `db:"id" json:"id"`
	Title   string    `db:"title" json:"title"`
	Rows    int       `db:"rows" json:"rows"`
	Columns int       `db:"columns" json:"columns"`
	Date    time.Time `db:"date" json:"date"`
}

// TicketPatch carries a partial update; nil fields are left untouched.
type TicketPatch struct {
	Title   *string    `json:"title"`
	Rows    *int       `json:"rows"`
	Columns *int       `json:"columns"`
	Date    *time.Time `json:"date"`
}
