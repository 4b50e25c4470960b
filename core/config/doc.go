// Package config provides configuration management for the ingester.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file through godotenv. Defaults come from the `default` struct tags of the
// partial configs.
//
// # Configuration Structure
//
//   - Database: driver and connection parameters (DATABASE_*)
//   - Source: default input path or bucket/key (SOURCE_*)
//   - Storage: object storage provider and credentials (STORAGE_*)
//   - Server: HTTP port and API key for the serve command (SERVER_*)
//   - Log: level and format (LOG_*)
//
// The variable names of earlier deployments (DB_HOST, DB_PORT, S3_BUCKET_NAME,
// S3_FILE_KEY, ...) are still honoured when the canonical name is unset.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Database.Host)
package config
