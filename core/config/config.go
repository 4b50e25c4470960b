package config

import (
	"fmt"
	"reflect"
	"strings"

	"library-ingest/core/database"
	"library-ingest/core/logger"
	"library-ingest/core/server"
	"library-ingest/core/source"
	"library-ingest/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Source holds the default input location.
	Source source.Config `mapstructure:"source"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal in production; real environment variables
	// still apply through AutomaticEnv.
	_ = godotenv.Load(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// The input bucket defaults to the storage bucket
	if config.Source.Bucket == "" && config.Source.Key != "" {
		config.Source.Bucket = config.Storage.Bucket
	}

	return &config, nil
}

// legacyEnv maps keys to the variable names used by earlier deployments
// (DB_HOST, S3_BUCKET_NAME, ...). The canonical name wins when both are set.
var legacyEnv = map[string]string{
	"database.name":     "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"source.bucket":     "S3_BUCKET_NAME",
	"source.key":        "S3_FILE_KEY",
}

func bindLegacyEnv(v *viper.Viper) error {
	for key, legacy := range legacyEnv {
		canonical := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, legacy); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
