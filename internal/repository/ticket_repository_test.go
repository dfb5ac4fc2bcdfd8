package repository

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/tracker/internal/domain"
)

func newTicketMock(t *testing.T) (pgxmock.PgxPoolIface, TicketRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewTicketRepository(mock)
}

func ticketColumns() []string {
	return []string{"id", "title", "description", "status", "created_by", "assigned_to", "created_at", "updated_at"}
}

func TestTicketCreate(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs("printer on fire", "third floor", domain.TicketStatusOpen, "user-1", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("ticket-1", now, now))

	ticket := &domain.Ticket{
		Title:       "printer on fire",
		Description: "third floor",
		Status:      domain.TicketStatusOpen,
		CreatedByID: "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), ticket))
	assert.Equal(t, "ticket-1", ticket.ID)
	assert.False(t, ticket.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketGetByID(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, title, description, status, created_by, assigned_to, created_at, updated_at").
		WithArgs("ticket-1").
		WillReturnRows(pgxmock.NewRows(ticketColumns()).
			AddRow("ticket-1", "title", "desc", domain.TicketStatusOpen, "user-1", (*string)(nil), now, now))

	ticket, err := repo.GetByID(context.Background(), "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", ticket.CreatedByID)
	assert.Nil(t, ticket.AssignedToID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListFiltersByCreatorAndSearch(t *testing.T) {
	mock, repo := newTicketMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM tickets WHERE 1=1 AND created_by=\$1 AND \(LOWER\(title\) LIKE \$2 OR LOWER\(description\) LIKE \$2 OR LOWER\(status\) LIKE \$2\)`).
		WithArgs("user-1", "%printer%").
		WillReturnRows(pgxmock.NewRows(ticketColumns()).
			AddRow("ticket-1", "printer jam", "desc", domain.TicketStatusOpen, "user-1", (*string)(nil), now, now))

	createdBy := "user-1"
	search := "Printer"
	tickets, err := repo.List(context.Background(), TicketFilter{
		CreatedByID: &createdBy,
		SearchTerm:  &search,
	})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "printer jam", tickets[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListOrderingWhitelist(t *testing.T) {
	mock, repo := newTicketMock(t)

	// Unknown column falls back to the default created_at ordering.
	mock.ExpectQuery(`ORDER BY created_at ASC`).
		WillReturnRows(pgxmock.NewRows(ticketColumns()))
	_, err := repo.List(context.Background(), TicketFilter{OrderBy: "password_hash"})
	require.NoError(t, err)

	mock.ExpectQuery(`ORDER BY status DESC`).
		WillReturnRows(pgxmock.NewRows(ticketColumns()))
	_, err = repo.List(context.Background(), TicketFilter{OrderBy: "status", Descending: true})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketUpdateMissingRow(t *testing.T) {
	mock, repo := newTicketMock(t)

	mock.ExpectExec("UPDATE tickets SET").
		WithArgs("title", "desc", domain.TicketStatusClosed, (*string)(nil), "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.Ticket{
		ID:          "ghost",
		Title:       "title",
		Description: "desc",
		Status:      domain.TicketStatusClosed,
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
