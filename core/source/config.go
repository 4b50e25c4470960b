package source

// Config holds the default input location.
type Config struct {
	// Path is a local CSV file.
	Path string `mapstructure:"path" default:""`
	// Bucket holds the remote object. Falls back to storage.bucket when empty.
	Bucket string `mapstructure:"bucket" default:""`
	// Key is the remote object key.
	Key string `mapstructure:"key" default:""`
	// StagingDir receives downloaded objects. Empty means the OS temp dir.
	StagingDir string `mapstructure:"staging_dir" default:""`
}

// Location returns the configured input location.
func (c Config) Location() Location {
	return Location{Path: c.Path, Bucket: c.Bucket, Key: c.Key}
}
