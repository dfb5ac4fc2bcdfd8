package dto

import (
	"encoding/json"
	"time"

	"github.com/ticketflow/tracker/internal/domain"
)

// OptionalString distinguishes an absent JSON field from an explicit
// null, so an update can clear a nullable column.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as submitted; a JSON null leaves Value nil.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

// UpdateTicketRequest payload for PUT and PATCH. All fields optional;
// which ones are honored depends on the actor's role. Title and status
// are not validated here: for role "user" they are dropped before they
// matter, so the enum and length checks live in the service where only
// the honored fields are examined.
type UpdateTicketRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	AssignedTo  OptionalString `json:"assigned_to"`
}

// TicketResponse list-view representation; no comments included.
// created_by carries the creator's username; assigned_to stays an id
// with the username alongside it.
type TicketResponse struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Status             domain.TicketStatus `json:"status"`
	CreatedBy          string              `json:"created_by"`
	AssignedTo         *string             `json:"assigned_to"`
	AssignedToUsername *string             `json:"assigned_to_username"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// TicketDetailResponse detail view with nested comments.
type TicketDetailResponse struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Status             domain.TicketStatus `json:"status"`
	CreatedBy          string              `json:"created_by"`
	AssignedTo         *string             `json:"assigned_to"`
	AssignedToUsername *string             `json:"assigned_to_username"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Comments           []CommentResponse   `json:"comments"`
}
