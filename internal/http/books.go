package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf/internal/auth"
	"bookshelf/internal/database"
	"bookshelf/internal/entities"
)

// BookStore defines database operations for book management.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	ListBooks(filter database.BookFilter) ([]entities.Book, error)
	UpdateBook(id uint, updated *entities.Book) (*entities.Book, error)
	DeleteBook(id uint) error
	GetBookStats() (totalBooks int64, totalAuthors int64, err error)
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type bookRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Pages       int    `json:"pages"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Year        int    `json:"year"`
}

func (r *bookRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	if r.Title == "" {
		return "title is required"
	}
	if r.Author == "" {
		return "author is required"
	}
	if r.Pages < 0 {
		return "pages must not be negative"
	}
	if r.Year < 0 {
		return "year must not be negative"
	}
	return ""
}

// CreateBook adds a new book owned by the authenticated user.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	book := &entities.Book{
		UserID:      auth.CurrentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Pages:       req.Pages,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Year:        req.Year,
	}
	if err := bc.store.CreateBook(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// ListBooks returns books, optionally narrowed by filters.
// GET /api/books?title=&author=&publisher=&year=&limit=&offset=
func (bc *BooksController) ListBooks(c *gin.Context) {
	year, ok := parseQueryInt(c, "year")
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := parseQueryInt(c, "offset")
	if !ok {
		return
	}

	filter := database.BookFilter{
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Publisher: c.Query("publisher"),
		Year:      year,
		Limit:     limit,
		Offset:    offset,
	}

	books, err := bc.store.ListBooks(filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBook returns a single book by ID.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook replaces the descriptive fields of a book.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondBadRequest(c, msg)
		return
	}

	book, err := bc.store.UpdateBook(id, &entities.Book{
		Title:       req.Title,
		Description: req.Description,
		Pages:       req.Pages,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Year:        req.Year,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBookStats returns aggregate counts.
// GET /api/books/stats
func (bc *BooksController) GetBookStats(c *gin.Context) {
	totalBooks, totalAuthors, err := bc.store.GetBookStats()
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_books":   totalBooks,
		"total_authors": totalAuthors,
	})
}
