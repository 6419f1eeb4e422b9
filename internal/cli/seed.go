package cli

import (
	"flag"
	"fmt"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/database"
)

// SeedCommand inserts demo books into an empty database.
type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert demo books when the books table is empty.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	created, err := db.SeedDemoBooks()
	if err != nil {
		return fmt.Errorf("failed to seed demo books: %w", err)
	}

	if created == 0 {
		fmt.Println("Books already present, nothing seeded")
	} else {
		fmt.Printf("Seeded %d demo books\n", created)
	}
	return nil
}
