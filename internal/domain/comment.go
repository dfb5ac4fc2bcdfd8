package domain

import "time"

// Comment is an immutable note attached to a ticket. AuthorUsername is
// a read-time denormalization; only AuthorID is persisted.
type Comment struct {
	ID             string
	TicketID       string
	AuthorID       string
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}
