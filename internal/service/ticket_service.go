package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ticketflow/tracker/internal/auth"
	"github.com/ticketflow/tracker/internal/domain"
	"github.com/ticketflow/tracker/internal/events"
	"github.com/ticketflow/tracker/internal/repository"
	apperrors "github.com/ticketflow/tracker/pkg/util"
)

// maxTitleLength mirrors the tickets.title column width.
const maxTitleLength = 255

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketListInput describes listing parameters.
type TicketListInput struct {
	Search   *string
	Ordering string
	Page     int
	PageSize int
}

// TicketUpdateInput describes a full or partial update. Nil fields were
// not submitted. AssignedToSet distinguishes an explicit null (clear the
// assignee) from an absent field.
type TicketUpdateInput struct {
	Title         *string
	Description   *string
	Status        *string
	AssignedTo    *string
	AssignedToSet bool
}

// CommentCreateInput describes a comment payload. TicketID comes from
// the route when present, otherwise from the request body.
type CommentCreateInput struct {
	TicketID string
	Content  string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket for the actor. The creator is always the
// actor; any client-supplied creator is ignored upstream.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Status:            domain.TicketStatusOpen,
		CreatedByID:       actor.ID,
		CreatedByUsername: actor.Username,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		ActorID:  actor.ID,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor: admins and managers see
// every ticket, ordinary users only the ones they created.
func (s *TicketService) List(ctx context.Context, actor *domain.User, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		SearchTerm: input.Search,
	}
	if !auth.IsAdminOrManager(actor) {
		createdBy := actor.ID
		filter.CreatedByID = &createdBy
	}

	// Unknown ordering fields are ignored, leaving the default order.
	ordering := strings.TrimSpace(input.Ordering)
	if strings.HasPrefix(ordering, "-") {
		filter.Descending = true
		ordering = ordering[1:]
	}
	filter.OrderBy = ordering

	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resolver := s.newUsernameResolver()
	for i := range tickets {
		if err := s.resolveTicketUsernames(ctx, &tickets[i], resolver); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

// Get fetches a ticket with its comments. Any authenticated user may
// retrieve any ticket by id.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, []domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}

	resolver := s.newUsernameResolver()
	if err := s.resolveTicketUsernames(ctx, ticket, resolver); err != nil {
		return nil, nil, err
	}
	for i := range comments {
		name, err := resolver(ctx, comments[i].AuthorID)
		if err != nil {
			return nil, nil, err
		}
		comments[i].AuthorUsername = name
	}
	return ticket, comments, nil
}

// Update mutates a ticket under the edit policy. Actors with role
// "user" may only change the description; any other submitted field is
// silently dropped. Managers and admins may change title, description,
// status and assignee. Creator and timestamps are never writable.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	if !auth.CanEditTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("you cannot edit this ticket")
	}

	var changed []string

	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
		changed = append(changed, "description")
	}

	if auth.IsAdminOrManager(actor) {
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if utf8.RuneCountInString(title) > maxTitleLength {
				return nil, apperrors.NewValidationError("invalid payload",
					map[string]any{"title": fmt.Sprintf("must be at most %d characters", maxTitleLength)})
			}
			ticket.Title = title
			changed = append(changed, "title")
		}
		if input.Status != nil {
			status := domain.TicketStatus(*input.Status)
			if !status.Valid() {
				return nil, apperrors.NewValidationError("invalid payload",
					map[string]any{"status": "must be one of open, in_progress, closed"})
			}
			ticket.Status = status
			changed = append(changed, "status")
		}
		if input.AssignedToSet {
			if input.AssignedTo != nil {
				if _, err := s.users.GetByID(ctx, *input.AssignedTo); err != nil {
					if err == pgx.ErrNoRows {
						return nil, apperrors.NewValidationError("invalid payload",
							map[string]any{"assigned_to": "user does not exist"})
					}
					return nil, err
				}
			}
			ticket.AssignedToID = input.AssignedTo
			changed = append(changed, "assigned_to")
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.resolveTicketUsernames(ctx, ticket, s.newUsernameResolver()); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		ActorID:  actor.ID,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			ChangedFields: changed,
			Status:        ticket.Status,
		},
	})
	return ticket, nil
}

// AddComment attaches a comment to an existing ticket. The author is
// always the actor.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, input CommentCreateInput) (*domain.Comment, error) {
	if strings.TrimSpace(input.TicketID) == "" {
		return nil, apperrors.NewValidationError("invalid payload",
			map[string]any{"ticket": "ticket id is required"})
	}
	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}

	comment := &domain.Comment{
		TicketID:       ticket.ID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Content:        strings.TrimSpace(input.Content),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		ActorID:  actor.ID,
		TicketID: ticket.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// newUsernameResolver returns a lookup memoized per request, so a page
// of tickets costs one user fetch per distinct id. A missing user
// (assignee cleared by deletion mid-read) resolves to an empty name.
func (s *TicketService) newUsernameResolver() func(context.Context, string) (string, error) {
	cache := map[string]string{}
	return func(ctx context.Context, userID string) (string, error) {
		if name, ok := cache[userID]; ok {
			return name, nil
		}
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if err == pgx.ErrNoRows {
				cache[userID] = ""
				return "", nil
			}
			return "", err
		}
		cache[userID] = user.Username
		return user.Username, nil
	}
}

func (s *TicketService) resolveTicketUsernames(ctx context.Context, ticket *domain.Ticket, resolve func(context.Context, string) (string, error)) error {
	name, err := resolve(ctx, ticket.CreatedByID)
	if err != nil {
		return err
	}
	ticket.CreatedByUsername = name

	if ticket.AssignedToID == nil {
		ticket.AssignedToUsername = nil
		return nil
	}
	assignee, err := resolve(ctx, *ticket.AssignedToID)
	if err != nil {
		return err
	}
	ticket.AssignedToUsername = &assignee
	return nil
}

// stringPreview truncates on rune boundaries so multi-byte content
// never yields an invalid UTF-8 preview.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
