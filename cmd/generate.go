package cmd

import (
	"context"
	"fmt"

	"library-ingest/core/storage"
	"library-ingest/feature/library"

	"github.com/spf13/cobra"
)

var (
	// Flags for the generate command
	generateOut     string
	generateRecords int
	generateSeed    int64
	generateUpload  bool
	generateBucket  string
	generateKey     string
)

// generateCmd writes a sample input file.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sample CSV input file",
	Long: `Writes a header and --records rows of synthetic authors and books.
With --upload the file is also stored in object storage under --key.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "sample_books_authors.csv", "Output file")
	generateCmd.Flags().IntVar(&generateRecords, "records", 100, "Number of rows to generate")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 picks one from the clock)")
	generateCmd.Flags().BoolVar(&generateUpload, "upload", false, "Upload the file to object storage")
	generateCmd.Flags().StringVar(&generateBucket, "bucket", "", "Upload bucket (default: storage bucket)")
	generateCmd.Flags().StringVar(&generateKey, "key", "", "Upload object key")

	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	var objects storage.ObjectStore
	if generateUpload {
		if objects, err = storage.Open(ctx, cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := library.NewService(nil, objects, cfg.Source, cfg.Storage.Bucket, l, nil)
	err = svc.GenerateSample(ctx, library.GenerateOptions{
		Path:    generateOut,
		Records: generateRecords,
		Seed:    generateSeed,
		Upload:  generateUpload,
		Bucket:  generateBucket,
		Key:     generateKey,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sample CSV file with %d records generated at: %s\n", generateRecords, generateOut)
	return nil
}
