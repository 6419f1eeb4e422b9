package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookshelf/internal/entities"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

var demoBooks = []entities.Book{
	{Title: "Learn FastAPI", Description: "A complete guide to FastAPI", Pages: 300, Author: "admin", Publisher: "Omega Press", Year: 2025},
	{Title: "Python Basics", Description: "Introduction to Python", Pages: 250, Author: "admin", Publisher: "Omega Press", Year: 2024},
	{Title: "Advanced SQLAlchemy", Description: "Deep dive into SQLAlchemy ORM", Pages: 400, Author: "admin", Publisher: "Omega Press", Year: 2023},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedDemoBooks inserts a fixed set of demo books when the table is empty.
// Returns the number of books created.
func (d *Database) SeedDemoBooks() (int, error) {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, book := range demoBooks {
		b := book
		if err := d.DB.Create(&b).Error; err != nil {
			return created, fmt.Errorf("failed to create demo book %q: %w", b.Title, err)
		}
		created++
	}
	log.Printf("Seeded %d demo books", created)
	return created, nil
}
