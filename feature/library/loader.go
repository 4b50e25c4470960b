package library

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the library feature around an existing service.
func NewFeature(svc *Service) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled reports whether a database is available to ingest into.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
