package library

import (
	"errors"

	"library-ingest/core/logger"
	"library-ingest/core/reconcile"
	"library-ingest/core/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the library feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Post("/ingest", h.HandleIngest)
	group.Get("/schema", h.HandleSchema)
}

// IngestResponse is the body of a successful ingestion.
type IngestResponse struct {
	Message string `json:"message"`
	reconcile.Stats
}

// IngestErrorResponse is the body of a failed ingestion.
type IngestErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	reconcile.Stats
}

// HandleIngest runs one ingestion.
// The body is either {"path": "..."} or {"bucket": "...", "key": "..."}.
// An empty body ingests the configured default source.
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var loc source.Location
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&loc); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body: " + err.Error(),
			})
		}
	}
	if loc.Key != "" && loc.Bucket == "" && loc.Path == "" {
		loc.Bucket = h.service.bucket
	}

	stats, err := h.service.Ingest(c.UserContext(), loc)
	if err != nil {
		kind := reconcile.KindOf(err)
		l.Error("Ingestion failed", zap.String("kind", kind.String()), zap.Error(err))
		return c.Status(statusFor(err)).JSON(IngestErrorResponse{
			Error: err.Error(),
			Kind:  kind.String(),
			Stats: stats,
		})
	}

	return c.JSON(IngestResponse{
		Message: "Processing completed successfully.",
		Stats:   stats,
	})
}

// HandleSchema reports whether the database has the columns ingestion needs.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNoDatabase) {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// statusFor maps an ingestion error to an HTTP status. Unclassified errors
// come from request validation.
func statusFor(err error) int {
	switch reconcile.KindOf(err) {
	case reconcile.KindInputNotFound:
		return fiber.StatusNotFound
	case reconcile.KindParse:
		return fiber.StatusUnprocessableEntity
	case reconcile.KindConstraintViolation:
		return fiber.StatusConflict
	case reconcile.KindConnectivity:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}
