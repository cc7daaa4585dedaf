package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema of every record table. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&bookRecord{},
		&bookISBNRecord{},
		&studentRecord{},
		&salesTicketRecord{},
		&productRecord{},
	)
}

// Book schema mirrors the books Postgres adapter.
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

// Every ISBN a book has held stays reserved to that book.
type bookISBNRecord struct {
	ISBN   string `gorm:"primaryKey;column:isbn;size:17"`
	BookID int64  `gorm:"column:book_id;not null;index"`
}

func (bookISBNRecord) TableName() string { return "book_isbns" }

// Student schema mirrors the students Postgres adapter.
type studentRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	FirstName      string    `gorm:"column:first_name;size:50;not null"`
	LastName       string    `gorm:"column:last_name;size:50;not null;index:idx_students_name"`
	Email          string    `gorm:"column:email;size:100;not null"`
	DateOfBirth    time.Time `gorm:"column:date_of_birth;type:date"`
	Address        string    `gorm:"column:address;size:200"`
	IsActive       bool      `gorm:"column:is_active;index"`
	GPA            float64   `gorm:"column:gpa;type:numeric(3,2)"`
	EnrollmentDate time.Time `gorm:"column:enrollment_date;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (studentRecord) TableName() string { return "students" }

// Sales ticket schema mirrors the tickets Postgres adapter.
type salesTicketRecord struct {
	ID                  int64            `gorm:"primaryKey;column:id"`
	TicketNumber        string           `gorm:"column:ticket_number;size:20;not null;uniqueIndex"`
	CustomerName        string           `gorm:"column:customer_name;size:50;not null"`
	TotalAmount         decimal.Decimal  `gorm:"column:total_amount;type:numeric(18,2);not null"`
	CreatedDate         time.Time        `gorm:"column:created_date;not null;index"`
	CompletedDate       *time.Time       `gorm:"column:completed_date"`
	Status              string           `gorm:"column:status;size:20;not null;index"`
	Notes               string           `gorm:"column:notes;size:500"`
	SalesRepresentative string           `gorm:"column:sales_representative;size:50;not null"`
	IsPaid              bool             `gorm:"column:is_paid;not null"`
	DiscountAmount      *decimal.Decimal `gorm:"column:discount_amount;type:numeric(18,2)"`
	TaxAmount           *decimal.Decimal `gorm:"column:tax_amount;type:numeric(18,2)"`
}

func (salesTicketRecord) TableName() string { return "sales_tickets" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Name          string          `gorm:"column:name;size:100;not null"`
	Description   string          `gorm:"column:description;size:500"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null"`
	IsAvailable   bool            `gorm:"column:is_available;index"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     *time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (productRecord) TableName() string { return "products" }
