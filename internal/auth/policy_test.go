package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketflow/tracker/internal/domain"
)

func user(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Username: "u-" + id, Role: role}
}

func ticket(createdBy string, status domain.TicketStatus) *domain.Ticket {
	return &domain.Ticket{ID: "t1", CreatedByID: createdBy, Status: status}
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, IsAdmin(user("1", domain.RoleAdmin)))
	assert.False(t, IsAdmin(user("1", domain.RoleManager)))
	assert.False(t, IsAdmin(user("1", domain.RoleUser)))
	assert.False(t, IsAdmin(nil))

	assert.True(t, IsManager(user("1", domain.RoleManager)))
	assert.False(t, IsManager(user("1", domain.RoleAdmin)))
	assert.False(t, IsManager(nil))

	assert.True(t, IsAdminOrManager(user("1", domain.RoleAdmin)))
	assert.True(t, IsAdminOrManager(user("1", domain.RoleManager)))
	assert.False(t, IsAdminOrManager(user("1", domain.RoleUser)))
	assert.False(t, IsAdminOrManager(nil))
}

func TestIsTicketOwner(t *testing.T) {
	owner := user("1", domain.RoleUser)
	other := user("2", domain.RoleUser)
	tk := ticket("1", domain.TicketStatusOpen)

	assert.True(t, IsTicketOwner(owner, tk))
	assert.False(t, IsTicketOwner(other, tk))
	assert.False(t, IsTicketOwner(nil, tk))
	assert.False(t, IsTicketOwner(owner, nil))
}

func TestCanEditTicket(t *testing.T) {
	tests := []struct {
		name   string
		actor  *domain.User
		ticket *domain.Ticket
		want   bool
	}{
		{"admin edits any ticket", user("9", domain.RoleAdmin), ticket("1", domain.TicketStatusClosed), true},
		{"manager edits any ticket", user("9", domain.RoleManager), ticket("1", domain.TicketStatusInProgress), true},
		{"owner edits own open ticket", user("1", domain.RoleUser), ticket("1", domain.TicketStatusOpen), true},
		{"owner cannot edit own in_progress ticket", user("1", domain.RoleUser), ticket("1", domain.TicketStatusInProgress), false},
		{"owner cannot edit own closed ticket", user("1", domain.RoleUser), ticket("1", domain.TicketStatusClosed), false},
		{"non-owner user cannot edit open ticket", user("2", domain.RoleUser), ticket("1", domain.TicketStatusOpen), false},
		{"nil actor never edits", nil, ticket("1", domain.TicketStatusOpen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditTicket(tt.actor, tt.ticket))
		})
	}
}
