package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/recordkeeper/internal/domains/books/domain"
	"github.com/Apurer/recordkeeper/internal/domains/books/ports"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists books in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.Run beforehand.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// bookRecord maps the book aggregate to the books table.
type bookRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	Title           string          `gorm:"column:title;size:100;not null;index"`
	Author          string          `gorm:"column:author;size:50;not null"`
	ISBN            string          `gorm:"column:isbn;size:17;not null;uniqueIndex"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	PublicationDate time.Time       `gorm:"column:publication_date;type:date"`
	Description     string          `gorm:"column:description;size:500"`
	IsAvailable     bool            `gorm:"column:is_available;index"`
	Rating          float64         `gorm:"column:rating;type:numeric(2,1)"`
	StockQuantity   int             `gorm:"column:stock_quantity"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (bookRecord) TableName() string { return "books" }

// isbnReservation keeps every ISBN a book has ever carried, so a changed ISBN is never reissued.
type isbnReservation struct {
	ISBN   string `gorm:"primaryKey;column:isbn;size:17"`
	BookID int64  `gorm:"column:book_id;not null;index"`
}

func (isbnReservation) TableName() string { return "book_isbns" }

// Add inserts a new book; a duplicate ISBN yields ports.ErrConflict.
func (r *Repository) Add(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book is nil")
	}
	record := toRecord(book)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return translate(err)
		}
		return reserveISBN(tx, record.ISBN, record.ID)
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a book by identifier, withdrawn books included.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetByISBN fetches a book by ISBN.
func (r *Repository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "isbn = ?", strings.TrimSpace(isbn))
}

// ListAvailable returns available books ordered by title.
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookRecord
	if err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("title ASC").Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByRatingRange returns available books rated within [min, max], best first.
func (r *Repository) ListByRatingRange(ctx context.Context, min, max float64) ([]*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookRecord
	if err := r.db.WithContext(ctx).
		Where("is_available = ? AND rating >= ? AND rating <= ?", true, min, max).
		Order("rating DESC").Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Update loads the row under lock, applies mutate and writes the result back.
func (r *Repository) Update(ctx context.Context, id int64, mutate ports.Mutation) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	var result *domain.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := r.first(tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
		if err != nil {
			return err
		}
		previousISBN := book.ISBN
		if err := mutate(book); err != nil {
			return err
		}
		book.ID = id
		record := toRecord(book)
		if record.ISBN != previousISBN {
			if err := reserveISBN(tx, record.ISBN, id); err != nil {
				return err
			}
		}
		if err := tx.Save(&record).Error; err != nil {
			return translate(err)
		}
		result = record.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) first(db *gorm.DB, query string, arg any) (*domain.Book, error) {
	var record bookRecord
	if err := db.First(&record, query, arg).Error; err != nil {
		if platformpostgres.IsNotFound(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// reserveISBN records isbn for the book, failing with ports.ErrConflict when another book ever held it.
func reserveISBN(tx *gorm.DB, isbn string, bookID int64) error {
	var existing isbnReservation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "isbn = ?", isbn).Error
	switch {
	case err == nil:
		if existing.BookID != bookID {
			return ports.ErrConflict
		}
		return nil
	case !platformpostgres.IsNotFound(err):
		return err
	}
	return translate(tx.Create(&isbnReservation{ISBN: isbn, BookID: bookID}).Error)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres book repository not configured")
	}
	return nil
}

func translate(err error) error {
	if platformpostgres.IsUniqueViolation(err) {
		return ports.ErrConflict
	}
	return err
}

func toRecord(book *domain.Book) bookRecord {
	return bookRecord{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            strings.TrimSpace(book.ISBN),
		Price:           book.Price,
		PublicationDate: book.PublicationDate,
		Description:     book.Description,
		IsAvailable:     book.IsAvailable,
		Rating:          book.Rating,
		StockQuantity:   book.StockQuantity,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

func (r bookRecord) toDomain() *domain.Book {
	return &domain.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Price:           r.Price,
		PublicationDate: r.PublicationDate,
		Description:     r.Description,
		IsAvailable:     r.IsAvailable,
		Rating:          r.Rating,
		StockQuantity:   r.StockQuantity,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toDomainList(records []bookRecord) []*domain.Book {
	books := make([]*domain.Book, 0, len(records))
	for i := range records {
		books = append(books, records[i].toDomain())
	}
	return books
}
