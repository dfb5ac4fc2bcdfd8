package dto

import "time"

// CreateCommentRequest payload. Ticket is optional here because the
// nested route carries the ticket id in the path.
type CreateCommentRequest struct {
	Content string  `json:"content" validate:"required"`
	Ticket  *string `json:"ticket"`
}

// CommentResponse representation of a comment. Author carries the
// username; the ticket id is implied by the route the comment was
// fetched through.
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
