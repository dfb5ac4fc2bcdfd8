package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketflow/tracker/internal/api/dto"
	"github.com/ticketflow/tracker/internal/auth"
	"github.com/ticketflow/tracker/internal/service"
	apperrors "github.com/ticketflow/tracker/pkg/util"
)

// CommentsHandler manages comment creation. Comments are immutable, so
// this is the whole surface.
type CommentsHandler struct {
	service *service.TicketService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(ticketService *service.TicketService) *CommentsHandler {
	return &CommentsHandler{service: ticketService}
}

// CreateForTicket POST /tickets/:id/comments.
func (h *CommentsHandler) CreateForTicket(c *fiber.Ctx) error {
	return h.create(c, c.Params("id"))
}

// Create POST /comments. The ticket id comes from the request body.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	return h.create(c, "")
}

func (h *CommentsHandler) create(c *fiber.Ctx, ticketID string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("invalid payload", details)
	}

	// Path id wins; fall back to the body's ticket field.
	if ticketID == "" && req.Ticket != nil {
		ticketID = *req.Ticket
	}

	comment, err := h.service.AddComment(c.Context(), principal, service.CommentCreateInput{
		TicketID: ticketID,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}
