// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and mounts its own routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry and loads enabled features in order via
// LoadAll.
package loader
