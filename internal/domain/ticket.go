package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is a trackable issue or request. The username fields are
// read-time denormalizations resolved from the users table; only the
// id fields are persisted.
type Ticket struct {
	ID                 string
	Title              string
	Description        string
	Status             TicketStatus
	CreatedByID        string
	CreatedByUsername  string
	AssignedToID       *string
	AssignedToUsername *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
