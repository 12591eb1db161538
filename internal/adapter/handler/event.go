package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/eventscript-team/eventscript/errors"
	eventdto "github.com/eventscript-team/eventscript/internal/adapter/dto/event"
	"github.com/eventscript-team/eventscript/internal/usecase/event"
)

// Event handles event endpoints
type Event struct {
	eventSvc event.Service
	logger   *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventSvc event.Service, logger *zap.Logger) *Event {
	return &Event{eventSvc: eventSvc, logger: logger}
}

// Create handles POST /v1/events
func (h *Event) Create(c echo.Context) error {
	var req eventdto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.eventSvc.CreateEvent(c.Request().Context(), event.CreateEventInput{
		Title:           req.Title,
		EventType:       req.EventType,
		DurationMinutes: req.DurationMinutes,
		StartTime:       req.StartTime,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, created, "event created")
}

// Get handles GET /v1/events/:id
func (h *Event) Get(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	found, err := h.eventSvc.GetEvent(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, found, "")
}

// parseEventID validates the :id path parameter before any I/O happens
func parseEventID(c echo.Context) (uuid.UUID, error) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidArgument("malformed event id")
	}
	return eventID, nil
}
