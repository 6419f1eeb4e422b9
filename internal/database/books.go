package database

import (
	"errors"

	"gorm.io/gorm"

	"bookshelf/internal/entities"
)

// BookFilter narrows a book listing. Title, Author and Publisher are
// case-insensitive substring matches; Year is an exact match when non-zero.
type BookFilter struct {
	Title     string
	Author    string
	Publisher string
	Year      int
	Limit     int
	Offset    int
}

func (d *Database) CreateBook(book *entities.Book) error {
	return d.DB.Create(book).Error
}

func (d *Database) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (d *Database) ListBooks(filter BookFilter) ([]entities.Book, error) {
	var books []entities.Book

	query := d.DB.Order("id ASC")
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		query = query.Where("LOWER(author) LIKE LOWER(?)", "%"+filter.Author+"%")
	}
	if filter.Publisher != "" {
		query = query.Where("LOWER(publisher) LIKE LOWER(?)", "%"+filter.Publisher+"%")
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&books).Error
	return books, err
}

// UpdateBook replaces the descriptive fields of an existing book.
// ID and owner are never touched.
func (d *Database) UpdateBook(id uint, updated *entities.Book) (*entities.Book, error) {
	book, err := d.GetBookByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"title":       updated.Title,
		"description": updated.Description,
		"pages":       updated.Pages,
		"author":      updated.Author,
		"publisher":   updated.Publisher,
		"year":        updated.Year,
	}
	if err := d.DB.Model(book).Updates(updates).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (d *Database) DeleteBook(id uint) error {
	result := d.DB.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) GetBookStats() (totalBooks int64, totalAuthors int64, err error) {
	err = d.DB.Model(&entities.Book{}).Count(&totalBooks).Error
	if err != nil {
		return
	}
	err = d.DB.Model(&entities.Book{}).Distinct("author").Count(&totalAuthors).Error
	return
}
