package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/eventscript-team/eventscript/errors"
	layoutdto "github.com/eventscript-team/eventscript/internal/adapter/dto/layout"
	scriptdto "github.com/eventscript-team/eventscript/internal/adapter/dto/script"
	"github.com/eventscript-team/eventscript/internal/usecase/layout"
	"github.com/eventscript-team/eventscript/internal/usecase/script"
	"github.com/eventscript-team/eventscript/internal/usecase/timeline"
)

// Pipeline handles the generation workflow endpoints: layout generation,
// script expansion, chunking, timeline scheduling and segment mutations
type Pipeline struct {
	layoutSvc layout.Service
	scriptSvc script.Service
	logger    *zap.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(layoutSvc layout.Service, scriptSvc script.Service, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		layoutSvc: layoutSvc,
		scriptSvc: scriptSvc,
		logger:    logger,
	}
}

// GenerateLayout handles POST /v1/events/:id/layout
func (h *Pipeline) GenerateLayout(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	lay, err := h.layoutSvc.GenerateLayout(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, lay, "layout generated")
}

// GetLayout handles GET /v1/events/:id/layout
func (h *Pipeline) GetLayout(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	lay, err := h.layoutSvc.GetLayout(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, lay, "")
}

// AddSegment handles POST /v1/events/:id/layout/segments
func (h *Pipeline) AddSegment(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req layoutdto.AddSegmentRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	lay, err := h.layoutSvc.AddSegment(c.Request().Context(), eventID, layout.SegmentInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, lay, "segment added")
}

// UpdateSegment handles PUT /v1/events/:id/layout/segments/:segmentId
func (h *Pipeline) UpdateSegment(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	segmentID, err := parseSegmentID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req layoutdto.UpdateSegmentRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	lay, err := h.layoutSvc.UpdateSegment(c.Request().Context(), eventID, segmentID, layout.SegmentInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, lay, "segment updated")
}

// DeleteSegment handles DELETE /v1/events/:id/layout/segments/:segmentId
func (h *Pipeline) DeleteSegment(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	segmentID, err := parseSegmentID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	lay, err := h.layoutSvc.DeleteSegment(c.Request().Context(), eventID, segmentID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, lay, "segment deleted")
}

// GenerateScript handles POST /v1/events/:id/script
func (h *Pipeline) GenerateScript(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	segments, err := h.scriptSvc.GenerateFromLayout(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, segments, "script generated")
}

// GetScript handles GET /v1/events/:id/script
func (h *Pipeline) GetScript(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	segments, err := h.scriptSvc.GetScript(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, segments, "")
}

// ChunkSegments handles POST /v1/events/:id/script/chunks
func (h *Pipeline) ChunkSegments(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req scriptdto.ChunkRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	report, err := h.scriptSvc.ChunkAll(c.Request().Context(), eventID, req.TargetWords)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, report, report.Message())
}

// Timeline handles GET /v1/events/:id/timeline?start=RFC3339
func (h *Pipeline) Timeline(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	start := time.Now()
	if raw := c.QueryParam("start"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("start must be RFC3339"))
		}
		start = parsed
	}

	lay, err := h.layoutSvc.GetLayout(c.Request().Context(), eventID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	scheduled := timeline.Schedule(lay.Segments, start)
	return HandleSuccess(h.logger, c, scheduled, "")
}

// parseSegmentID validates the :segmentId path parameter
func parseSegmentID(c echo.Context) (uuid.UUID, error) {
	segmentID, err := uuid.Parse(c.Param("segmentId"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidArgument("malformed segment id")
	}
	return segmentID, nil
}
