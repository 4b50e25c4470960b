package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"library-ingest/core/reconcile"
	"library-ingest/core/storage"

	"go.uber.org/zap"
)

// Location identifies the input: either a local Path or a remote (Bucket, Key).
type Location struct {
	Path   string `json:"path,omitempty"`
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key,omitempty"`
}

// IsRemote reports whether the location names an object.
func (l Location) IsRemote() bool {
	return l.Path == "" && l.Key != ""
}

// String renders the location for logs.
func (l Location) String() string {
	if l.IsRemote() {
		return fmt.Sprintf("%s/%s", l.Bucket, l.Key)
	}
	return l.Path
}

// Validate checks that exactly one form of location is set.
func (l Location) Validate() error {
	switch {
	case l.Path != "" && (l.Bucket != "" || l.Key != ""):
		return errors.New("source: set either a path or a bucket/key, not both")
	case l.Path == "" && l.Key == "":
		return errors.New("source: no input path or object key configured")
	case l.Path == "" && l.Bucket == "":
		return errors.New("source: object key given without a bucket")
	}
	return nil
}

// Staged is a local file ready to be read.
type Staged struct {
	// Path is the local file to open.
	Path string
	// temp is set when Path was created by the stager and must be removed.
	temp bool
}

// Close removes the file if the stager created it. Safe to call more than once.
func (s *Staged) Close() error {
	if s == nil || !s.temp {
		return nil
	}
	s.temp = false
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove staged file %s: %w", s.Path, err)
	}
	return nil
}

// Stager resolves a Location into a local file.
type Stager struct {
	objects    storage.ObjectStore
	stagingDir string
	logger     *zap.Logger
}

// NewStager creates a stager. objects may be nil when only local paths are used.
func NewStager(objects storage.ObjectStore, stagingDir string, logger *zap.Logger) *Stager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stager{objects: objects, stagingDir: stagingDir, logger: logger}
}

// Stage returns a local file for loc. Missing inputs fail with
// reconcile.ErrInputNotFound; unreachable storage with reconcile.ErrConnectivity.
// The caller must Close the result.
func (s *Stager) Stage(ctx context.Context, loc Location) (*Staged, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if !loc.IsRemote() {
		return s.stageLocal(loc.Path)
	}
	return s.stageRemote(ctx, loc.Bucket, loc.Key)
}

func (s *Stager) stageLocal(path string) (*Staged, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, reconcile.NewError(reconcile.KindInputNotFound, "stage "+path, err)
	}
	if err != nil {
		return nil, reconcile.NewError(reconcile.KindConnectivity, "stage "+path, err)
	}
	if info.IsDir() {
		return nil, reconcile.NewError(reconcile.KindInputNotFound, "stage "+path, fmt.Errorf("%s is a directory", path))
	}
	return &Staged{Path: path}, nil
}

func (s *Stager) stageRemote(ctx context.Context, bucket, key string) (*Staged, error) {
	if s.objects == nil {
		return nil, errors.New("source: object storage is not configured")
	}

	op := fmt.Sprintf("download %s/%s", bucket, key)

	f, err := os.CreateTemp(s.stagingDir, "library-input-*.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	staged := &Staged{Path: f.Name(), temp: true}

	n, err := s.objects.Fetch(ctx, bucket, key, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = staged.Close()
		if storage.IsNotFound(err) {
			return nil, reconcile.NewError(reconcile.KindInputNotFound, op, err)
		}
		return nil, reconcile.NewError(reconcile.KindConnectivity, op, err)
	}

	s.logger.Info("File downloaded from object storage",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int64("bytes", n),
	)
	return staged, nil
}
