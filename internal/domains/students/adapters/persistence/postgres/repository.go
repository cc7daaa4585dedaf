package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/recordkeeper/internal/domains/students/domain"
	"github.com/Apurer/recordkeeper/internal/domains/students/ports"
	platformpostgres "github.com/Apurer/recordkeeper/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists students in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The schema comes from migrations.Run.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func (r *Repository) Add(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if student == nil {
		return nil, errors.New("student is nil")
	}
	record := toRecord(student)
	now := time.Now().UTC()
	record.EnrollmentDate = now
	record.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return first(r.db.WithContext(ctx), id)
}

// ListActive orders by last name, then first name.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Student, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []studentRecord
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("last_name ASC").Order("first_name ASC").Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ListByGPARange(ctx context.Context, min, max float64) ([]*domain.Student, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []studentRecord
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND gpa >= ? AND gpa <= ?", true, min, max).
		Order("gpa DESC").Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) Update(ctx context.Context, id int64, mutate ports.Mutation) (*domain.Student, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	var result *domain.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		student, err := first(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		enrolled := student.EnrollmentDate
		if err := mutate(student); err != nil {
			return err
		}
		student.ID = id
		student.EnrollmentDate = enrolled
		student.UpdatedAt = time.Now().UTC()
		record := toRecord(student)
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		result = record.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func first(db *gorm.DB, id int64) (*domain.Student, error) {
	var record studentRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if platformpostgres.IsNotFound(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres student repository not configured")
	}
	return nil
}

func toRecord(s *domain.Student) studentRecord {
	return studentRecord{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		DateOfBirth:    s.DateOfBirth,
		Address:        s.Address,
		IsActive:       s.IsActive,
		GPA:            s.GPA,
		EnrollmentDate: s.EnrollmentDate,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r studentRecord) toDomain() *domain.Student {
	return &domain.Student{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateOfBirth:    r.DateOfBirth,
		Address:        r.Address,
		IsActive:       r.IsActive,
		GPA:            r.GPA,
		EnrollmentDate: r.EnrollmentDate,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toDomainList(records []studentRecord) []*domain.Student {
	out := make([]*domain.Student, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out
}
