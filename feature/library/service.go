package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"library-ingest/core/metrics"
	"library-ingest/core/reconcile"
	"library-ingest/core/source"
	"library-ingest/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when an operation needs a database but none is
// configured.
var ErrNoDatabase = errors.New("database is not configured")

// Service runs ingestions and sample generation.
type Service struct {
	db         *gorm.DB
	objects    storage.ObjectStore
	stager     *source.Stager
	defaultLoc source.Location
	bucket     string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService creates a new library service. objects may be nil when only
// local files are used; m may be nil to disable metrics.
func NewService(db *gorm.DB, objects storage.ObjectStore, src source.Config, bucket string, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:         db,
		objects:    objects,
		stager:     source.NewStager(objects, src.StagingDir, logger),
		defaultLoc: src.Location(),
		bucket:     bucket,
		logger:     logger,
		metrics:    m,
	}
}

// DefaultLocation returns the input used when a caller does not name one.
func (s *Service) DefaultLocation() source.Location {
	return s.defaultLoc
}

// Ingest reconciles the CSV at loc against the database in a single
// transaction on a single connection. A zero loc selects the configured
// default. On error the transaction is rolled back and the stats reached so
// far are returned with the error.
func (s *Service) Ingest(ctx context.Context, loc source.Location) (stats reconcile.Stats, err error) {
	if loc == (source.Location{}) {
		loc = s.defaultLoc
	}
	log := s.logger.With(zap.String("source", loc.String()))

	start := time.Now()
	defer func() {
		s.metrics.ObserveRun(stats, err, time.Since(start))
	}()

	if s.db == nil {
		return stats, reconcile.NewError(reconcile.KindConnectivity, "ingest", ErrNoDatabase)
	}

	staged, err := s.stager.Stage(ctx, loc)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := staged.Close(); cerr != nil {
			log.Warn("Failed to remove staged file", zap.Error(cerr))
		}
	}()

	f, err := os.Open(staged.Path)
	if err != nil {
		kind := reconcile.KindConnectivity
		if errors.Is(err, fs.ErrNotExist) {
			kind = reconcile.KindInputNotFound
		}
		return stats, reconcile.NewError(kind, "open "+staged.Path, err)
	}
	defer f.Close()

	log.Info("Processing started")

	err = s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var rerr error
			stats, rerr = reconcile.Reconcile(ctx, source.NewCSVReader(f), NewStore(tx), log)
			return rerr
		})
	})
	if err != nil {
		// Begin/commit and connection failures arrive unclassified
		err = reconcile.NewError(reconcile.KindConnectivity, "transaction", err)
		log.Error("Processing failed, transaction rolled back",
			zap.String("kind", reconcile.KindOf(err).String()),
			zap.Int("records_processed", stats.Processed),
			zap.Int("records_skipped", stats.Skipped),
			zap.Int("records_inserted", stats.Inserted),
			zap.Error(err),
		)
		return stats, err
	}

	log.Info("=== Processing Statistics ===",
		zap.Int("records_processed", stats.Processed),
		zap.Int("records_skipped", stats.Skipped),
		zap.Int("records_inserted", stats.Inserted),
	)
	return stats, nil
}

// CheckSchema reports columns missing from the live database.
func (s *Service) CheckSchema() (*SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return CheckSchema(s.db)
}

// Migrate creates the library tables.
func (s *Service) Migrate() error {
	if s.db == nil {
		return ErrNoDatabase
	}
	return Migrate(s.db)
}

// GenerateOptions configures GenerateSample.
type GenerateOptions struct {
	// Path is the local file to write.
	Path string
	// Records is the number of data rows.
	Records int
	// Seed makes the output reproducible. Zero picks a time-based seed.
	Seed int64
	// Upload also stores the file in object storage under Key.
	Upload bool
	// Bucket overrides the service bucket for the upload.
	Bucket string
	// Key is the object key for the upload.
	Key string
}

// GenerateSample writes a sample CSV to opts.Path and optionally uploads it.
func (s *Service) GenerateSample(ctx context.Context, opts GenerateOptions) error {
	if opts.Path == "" {
		return errors.New("output path is required")
	}
	if opts.Upload && opts.Key == "" {
		return errors.New("an object key is required to upload")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.Path, err)
	}
	if err := Generate(f, opts.Records, NewRand(seed)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Path, err)
	}
	s.logger.Info("Sample file generated",
		zap.String("path", opts.Path),
		zap.Int("records", opts.Records),
		zap.Int64("seed", seed),
	)

	if !opts.Upload {
		return nil
	}
	return s.upload(ctx, opts)
}

func (s *Service) upload(ctx context.Context, opts GenerateOptions) error {
	if s.objects == nil {
		return errors.New("object storage is not configured")
	}
	bucket := opts.Bucket
	if bucket == "" {
		bucket = s.bucket
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", opts.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", opts.Path, err)
	}

	if err := s.objects.Upload(ctx, bucket, opts.Key, f, info.Size(), "text/csv"); err != nil {
		return fmt.Errorf("failed to upload sample: %w", err)
	}
	s.logger.Info("Sample file uploaded", zap.String("bucket", bucket), zap.String("key", opts.Key))
	return nil
}
