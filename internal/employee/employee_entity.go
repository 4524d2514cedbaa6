package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	FirstName   string `gorm:"type:varchar(100);not null"`
	LastName    string `gorm:"type:varchar(100);not null"`
	Email       string `gorm:"type:varchar(255);uniqueIndex:uq_employees_email;not null"`
	PhoneNumber string `gorm:"type:varchar(50)"`

	Department string     `gorm:"type:varchar(100);not null;index:idx_employees_department"`
	Position   string     `gorm:"type:varchar(100);not null"`
	Salary     float64    `gorm:"type:numeric(12,2);not null"`
	HireDate   time.Time  `gorm:"type:date;not null"`
	ManagerID  *uuid.UUID `gorm:"type:uuid"`
	Skills     []string   `gorm:"serializer:json;type:jsonb"`

	IsActive bool `gorm:"not null;default:true;index:idx_employees_active"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
