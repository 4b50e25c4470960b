// Package database handles database connections and schema inspection.
//
// It wraps GORM to open PostgreSQL (default), MySQL or SQLite connections
// from the application's configuration. SQLite is intended for local runs and
// tests.
//
// # Connect
//
// Connect builds the driver DSN, enables GORM error translation and pings the
// server with the configured timeout. Close releases the pool.
//
// # Errors
//
// IsConstraintViolation recognizes integrity failures from every supported
// driver, so callers can tell a rejected insert from a lost connection.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let callers verify that the externally
// owned tables have the columns they rely on before writing to them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	missing, err := database.MissingColumns(db, "authors", []string{"author_id", "author_pen_name"})
package database
