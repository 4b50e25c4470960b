package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"library-ingest/core/config"
	"library-ingest/core/database"
	"library-ingest/feature/library"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	// Connect to DB
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	fmt.Println("=== Library schema ===")
	for _, table := range []string{"authors", "books", "library"} {
		cols, err := database.GetTableColumns(db, table)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %d columns\n", table, len(cols))
		for _, col := range cols {
			fmt.Printf("  %-20s %-16s null=%s key=%s\n", col.Field, col.Type, col.Null, col.Key)
		}
	}

	report, err := library.CheckSchema(db)
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal(err)
	}
}
