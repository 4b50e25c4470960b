package database

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (postgres, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"postgres"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"amkadian"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name. For sqlite it is the file path or DSN.
	Name string `mapstructure:"name" default:"amkadian"`
	// SSLMode is passed to postgres as sslmode.
	SSLMode string `mapstructure:"ssl_mode" default:"prefer"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoMigrate creates the library tables when they are missing.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"false"`
}
