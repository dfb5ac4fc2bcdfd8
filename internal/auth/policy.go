package auth

import "github.com/ticketflow/tracker/internal/domain"

// Authorization predicates over (actor, target). Actors reach these only
// after the middleware has authenticated them; a nil actor always fails.

// IsAdmin reports whether the actor holds the admin role.
func IsAdmin(actor *domain.User) bool {
	return actor != nil && actor.Role == domain.RoleAdmin
}

// IsManager reports whether the actor holds the manager role.
func IsManager(actor *domain.User) bool {
	return actor != nil && actor.Role == domain.RoleManager
}

// IsAdminOrManager reports whether the actor holds either triage role.
func IsAdminOrManager(actor *domain.User) bool {
	return IsAdmin(actor) || IsManager(actor)
}

// IsTicketOwner reports whether the actor created the ticket.
func IsTicketOwner(actor *domain.User, ticket *domain.Ticket) bool {
	return actor != nil && ticket != nil && ticket.CreatedByID == actor.ID
}

// CanEditTicket reports whether the actor may mutate the ticket:
// admins and managers always, the creator only while the ticket is open.
func CanEditTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if IsAdminOrManager(actor) {
		return true
	}
	return IsTicketOwner(actor, ticket) && ticket.Status == domain.TicketStatusOpen
}
