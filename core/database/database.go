package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and verifies it with a ping.
// Driver errors are translated so constraint failures surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dialector, err := dialectorFor(cfg, timeout)
	if err != nil {
		return nil, err
	}

	// Suppress GORM logging; the ingester logs its own progress
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func dialectorFor(cfg Config, timeout int) (gorm.Dialector, error) {
	// Special characters in credentials must be URL encoded in both DSN styles.
	userInfo := url.UserPassword(cfg.User, cfg.Password)

	switch cfg.Driver {
	case "", DriverPostgres:
		q := url.Values{}
		if cfg.SSLMode != "" {
			q.Set("sslmode", cfg.SSLMode)
		}
		q.Set("connect_timeout", fmt.Sprintf("%d", timeout))
		dsn := url.URL{
			Scheme:   "postgres",
			User:     userInfo,
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.Name,
			RawQuery: q.Encode(),
		}
		return postgres.Open(dsn.String()), nil
	case DriverMySQL:
		// [username[:password]@][protocol[(address)]]/dbname[?params]
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo.String(), cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
